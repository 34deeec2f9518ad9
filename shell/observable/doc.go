// Package observable provides wrapper components for instrumenting command and
// query handlers with metrics, tracing, and logging while keeping the handlers
// themselves pure.
//
// The wrappers are applied externally at wiring time, not hidden inside factory
// functions, so the observability composition stays explicit:
//
//	coreHandler := borrowbooks.NewCommandHandler(store)
//
//	observableHandler := observable.NewCommandWrapper[borrowbooks.Command, []borrowbooks.BorrowedBook](
//		coreHandler,
//		observable.WithCommandMetrics[borrowbooks.Command, []borrowbooks.BorrowedBook](metricsCollector),
//		observable.WithCommandLogging[borrowbooks.Command, []borrowbooks.BorrowedBook](logger),
//	)
//
// Every collaborator is optional; unit tests that target business logic use
// the unwrapped handlers directly.
package observable
