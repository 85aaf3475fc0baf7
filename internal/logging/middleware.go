package logging

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-Id"

// Middleware gives every huma operation its own LogData and logs it once the handler returns.
func Middleware(log *logrus.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		logData := NewLogData(log)

		requestID := ctx.Header(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.Must(uuid.NewV4()).String()
		}
		ctx.SetHeader(RequestIDHeader, requestID)

		operationID := "unknown"
		if op := ctx.Operation(); op != nil {
			operationID = op.OperationID
		}
		logData.AddData("requestID", requestID)
		logData.AddData("operationID", operationID)

		endTimer := logData.AddTiming("duration")
		next(huma.WithValue(ctx, logDataKey{}, logData))
		endTimer()

		status := ctx.Status()
		logData.AddData("status", status)
		entry := logData.Log()
		switch {
		case status >= http.StatusInternalServerError:
			entry.Errorf("Handler.%v.Error", operationID)
		case status >= http.StatusBadRequest:
			entry.Warnf("Handler.%v.Rejected", operationID)
		default:
			entry.Infof("Handler.%v.Complete", operationID)
		}
	}
}
