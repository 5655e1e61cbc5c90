// Package prom exports objstore I/O records as Prometheus metrics.
//
//	reg := prometheus.NewRegistry()
//	tracker, err := prom.NewTracker(reg, prom.WithStorePrefix("cos$my-bucket"))
//	if err != nil {
//	    return err
//	}
//	store, err := objstore.DefaultRegistry().NewStore(ctx, uri, &objstore.Params{Tracker: tracker})
package prom
