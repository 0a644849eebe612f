package main

import (
	"context"
	"os"
	"testing"

	"github.com/okian/stride/internal/adapters/http/api"
	app "github.com/okian/stride/internal/app"
	"github.com/okian/stride/internal/config"
	"github.com/okian/stride/internal/domain/scoring"
	"github.com/okian/stride/pkg/logger"
	"github.com/okian/stride/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("STRIDE_ADDR", ":8080")
			_ = os.Setenv("STRIDE_MAX_DATASETS", "8")
			_ = os.Setenv("STRIDE_BASELINE_STEPS", "8000")
			defer func() {
				_ = os.Unsetenv("STRIDE_ADDR")
				_ = os.Unsetenv("STRIDE_MAX_DATASETS")
				_ = os.Unsetenv("STRIDE_BASELINE_STEPS")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxDatasets, convey.ShouldEqual, 8)
				convey.So(cfg.BaselineSteps, convey.ShouldEqual, 8000)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithRoster(map[string]string{"Ana": "Blue"}),
					app.WithMaxDatasets(4),
					app.WithScoringPolicy(scoring.Policy{
						BaselineMax:  8000,
						CapThreshold: 15000,
						RampBase:     16000,
						CapScore:     23000,
					}),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := app.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then HTTP server should be creatable", func() {
				server := api.NewServer(svc, svc, 100, 1<<20)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				manager := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing the system metrics updater step", func() {
			convey.Convey("Then one update pass should not panic", func() {
				convey.So(updateSystemMetrics, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing service lifecycle", func() {
			ctx := context.Background()
			convey.So(logger.Init(), convey.ShouldBeNil)
			svc := app.New()

			convey.Convey("Then the service should start and stop cleanly", func() {
				convey.So(svc.Start(ctx), convey.ShouldBeNil)
				convey.So(svc.Stop, convey.ShouldNotPanic)
			})
		})
	})
}
