// Package logging builds the slog loggers the service runs with and ties log
// lines to the request identifier assigned by the HTTP middleware.
//
// The API server logs JSON to stdout via NewLogger; command-line tools log
// text to stderr via NewStderrLogger so stdout stays free for their output.
// The level comes from LOG_LEVEL.
//
// Example usage:
//
//	func main() {
//	    logger := logging.NewLogger()
//	    slog.SetDefault(logger)
//	    logger.Info("server started", slog.String("addr", ":8080"))
//	}
//
//	func handleRequest(ctx context.Context) {
//	    logger := logging.WithRequestID(ctx, slog.Default())
//	    logger.Info("summary requested")
//	}
package logging
