package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferedLogger() (*logrus.Logger, *bytes.Buffer) {
	logger := SetupLogging("debug")
	buf := &bytes.Buffer{}
	logger.Out = buf
	return logger, buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var lines []map[string]interface{}
	dec := json.NewDecoder(buf)
	for dec.More() {
		line := map[string]interface{}{}
		require.NoError(t, dec.Decode(&line))
		lines = append(lines, line)
	}
	return lines
}

func TestSetupLogging_Level(t *testing.T) {
	assert.Equal(t, logrus.WarnLevel, SetupLogging("warn").Level)
	assert.Equal(t, logrus.InfoLevel, SetupLogging("chatty").Level)
}

func TestLogData_FieldsAndTimings(t *testing.T) {
	logger, buf := bufferedLogger()
	logData := NewLogData(logger)

	logData.AddData("userID", 7)
	stop := logData.AddTiming("dbMs")
	stop()
	logData.Log().Info("done")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "info", lines[0]["loglevel"])
	assert.EqualValues(t, 7, lines[0]["userID"])
	assert.Contains(t, lines[0], "dbMs")
}

func TestGetLogData_NilSafe(t *testing.T) {
	logData := GetLogData(context.Background())
	assert.Nil(t, logData)

	// nil receivers are no-ops so handlers need no guards
	logData.AddData("k", "v")
	logData.AddTiming("t")()
}

func TestLoggingWrapper_ErrorAndComplete(t *testing.T) {
	logger, buf := bufferedLogger()

	failing := LoggingWrapper("Fail", logger, func(w http.ResponseWriter, r *http.Request, _ *LogData) error {
		assert.NotNil(t, GetLogData(r.Context()))
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("bad")
	})
	ok := LoggingWrapper("Ok", logger, func(w http.ResponseWriter, _ *http.Request, _ *LogData) error {
		w.WriteHeader(http.StatusOK)
		return nil
	})

	failing(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	ok(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	var messages []string
	for _, line := range decodeLines(t, buf) {
		messages = append(messages, line["msg"].(string))
	}
	assert.Contains(t, messages, "Handler.Fail.Error")
	assert.Contains(t, messages, "Handler.Ok.Complete")
}

type pingOutput struct {
	Body struct {
		HasLogData bool `json:"has_log_data"`
	}
}

func TestMiddleware_AttachesLogDataAndRequestID(t *testing.T) {
	logger, buf := bufferedLogger()
	_, api := humatest.New(t)
	api.UseMiddleware(Middleware(logger))
	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
	}, func(ctx context.Context, _ *struct{}) (*pingOutput, error) {
		out := &pingOutput{}
		out.Body.HasLogData = GetLogData(ctx) != nil
		return out, nil
	})

	resp := api.Get("/ping")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"has_log_data":true`)
	assert.NotEmpty(t, resp.Header().Get(RequestIDHeader))

	lines := decodeLines(t, buf)
	require.NotEmpty(t, lines)
	last := lines[len(lines)-1]
	assert.Equal(t, "Handler.ping.Complete", last["msg"])
	assert.EqualValues(t, http.StatusOK, last["status"])
}
