// Package channel maps channel names to Blockers and provides typed endpoints.
//
// A Registry creates one blocker.Blocker per channel name on first use, with the
// capacity declared for that channel or the registry default. A channel keeps the
// payload type it was created with; accessing it with another type fails with
// ErrTypeMismatch.
//
// # Writers and Readers
//
//	reg := channel.NewRegistry(channel.WithDefaultCapacity(10))
//
//	w, err := channel.NewWriter[Pose](reg, "/localization/pose")
//	if err != nil {
//		return err
//	}
//
//	// pull: snapshot once per cycle
//	rd, err := channel.NewReader[Pose](reg, "/localization/pose")
//
//	// push: callback invoked on the writer's goroutine
//	listener, err := channel.NewReader(reg, "/localization/pose",
//		channel.WithCallback(func(p *Pose) { tracker.Update(p) }),
//	)
//	defer listener.Close()
//
//	_ = w.Write(ctx, &Pose{X: 1, Y: 2})
//
//	reg.ObserveAll()
//	if !rd.Empty() {
//		latest, _ := rd.Latest()
//	}
//
// # Channel Tables
//
// Capacities can be declared in YAML and loaded with LoadChannelTable, or through
// the environment with Config and NewRegistryFromConfig:
//
//	channels:
//	  - name: /control/command
//	    capacity: 1
//
// # Tracing
//
// Publish records an "intrabus.publish" producer span on the tracer set with
// WithTracer, or on the global OpenTelemetry provider.
package channel
