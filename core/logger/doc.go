// Package logger builds slog loggers and provides attribute helpers shared by the
// bus packages.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithDevelopment("perception"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("channel created",
//		logger.Channel("/perception/obstacles"),
//		logger.Capacity(10),
//	)
//
// Production setups usually want JSON:
//
//	log := logger.New(logger.WithProduction("perception"))
//
// Packages that accept a logger default to a discarding one; pass the logger built
// here through their WithLogger options to see their output.
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for nil or empty input, which slog omits:
//
//	log.Error("subscriber callback panicked",
//		logger.Channel(name),
//		logger.Subscriber(id),
//		logger.Panic(r),
//	)
//
//	log.Warn("decode failed", logger.Error(err), logger.Topic("robot.pose"))
//
// # Testing
//
// Write to a buffer and assert on the output:
//
//	var buf bytes.Buffer
//	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))
package logger
