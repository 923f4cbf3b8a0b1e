package delete_client

import "context"

type CatalogService interface {
	DeleteClient(ctx context.Context, clientID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
