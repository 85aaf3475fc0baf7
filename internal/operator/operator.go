package operator

import (
	"context"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage *storage.Storage
	queue   chan ActionItem
	logger  *logrus.Logger
}

func NewOperator(s *storage.Storage, queue chan ActionItem, logger *logrus.Logger) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
		logger:  logger,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	if err := item.ctx.Err(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	err = o.perform(item, writer)
	if err != nil {
		if rbErr := writer.Rollback(); rbErr != nil {
			o.logger.WithError(rbErr).Warn("Operator.processItem.rollback")
		}
		if o.logger.IsLevelEnabled(logrus.DebugLevel) {
			o.logger.WithError(err).Debugf("Operator.processItem.failed %s", spew.Sdump(item.action))
		}
		item.response <- ActionItemResponse{err: err}
		return
	}

	if err = writer.Commit(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	item.response <- ActionItemResponse{}
}

// perform keeps a panicking action from taking the worker down with it.
func (o *Operator) perform(item ActionItem, writer *storage.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.WithField("panic", r).Error("Operator.perform.panic")
			err = fmt.Errorf("action panicked: %v", r)
		}
	}()
	return item.action.Perform(item.ctx, writer)
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
