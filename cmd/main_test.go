package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	app "github.com/okian/benchcoach/internal/app"
	"github.com/okian/benchcoach/internal/config"
	"github.com/okian/benchcoach/internal/domain/types"
	"github.com/okian/benchcoach/pkg/logger"
	"github.com/okian/benchcoach/pkg/metrics"
)

func init() {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
}

func TestServiceOptions(t *testing.T) {
	convey.Convey("Given the default configuration", t, func() {
		cfg := config.New()
		cfg.ShuffleSeed = 3

		convey.Convey("When building a service from it", func() {
			svc := app.New(serviceOptions(cfg, logger.Get())...)
			stats := svc.GetStats()

			convey.Convey("Then the configured values should be applied", func() {
				convey.So(stats["queue_size"], convey.ShouldEqual, cfg.CommandQueueSize)
				convey.So(stats["shot_clock_step"], convey.ShouldEqual, cfg.ShotClockStepSeconds)
				convey.So(stats["tick_interval"], convey.ShouldEqual, time.Second.String())
				convey.So(stats["presets"], convey.ShouldEqual, 2)
			})

			convey.Convey("Then the presets should be exposed by name", func() {
				p, ok := svc.Preset("3rd grade boys")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(p.Players, convey.ShouldHaveLength, 14)
			})
		})
	})
}

func TestMetricsOptions(t *testing.T) {
	convey.Convey("Given a config with metrics settings", t, func() {
		cfg := config.New()
		cfg.MetricsNamespace = "sideline"
		cfg.MetricsLabels = map[string]string{"team": "fifth_grade"}
		defer metrics.Configure()

		convey.Convey("When the metrics manager is configured from it", func() {
			registry := metrics.Configure(metricsOptions(cfg)...)
			metrics.RecordGameStarted()

			convey.Convey("Then metrics carry the configured prefix", func() {
				families, err := registry.Gather()
				convey.So(err, convey.ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				convey.So(names, convey.ShouldContain, "sideline_game_games_started_total")
			})
		})
	})
}

func TestHandler(t *testing.T) {
	convey.Convey("Given a started service behind the full handler", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		cfg := config.New()
		cfg.TickIntervalMS = int(time.Hour / time.Millisecond)
		cfg.ShuffleSeed = 11
		cfg.CORSAllowedOrigins = []string{"http://bench.test"}

		svc := app.New(serviceOptions(cfg, logger.Get())...)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		srv := httptest.NewServer(newHandler(ctx, cfg, svc))
		defer srv.Close()

		convey.Convey("When a preset game is started over HTTP", func() {
			resp, err := http.Post(srv.URL+"/game", "application/json", strings.NewReader(`{"preset":"5th Grade Boys"}`))
			convey.So(err, convey.ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			var view types.GameView
			convey.So(json.NewDecoder(resp.Body).Decode(&view), convey.ShouldBeNil)

			convey.Convey("Then the whole roster should start on the bench", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
				convey.So(view.Started, convey.ShouldBeTrue)
				convey.So(view.Bench, convey.ShouldHaveLength, 14)
				convey.So(view.OnCourt, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When the bench page and the docs are requested", func() {
			page, err := http.Get(srv.URL + "/")
			convey.So(err, convey.ShouldBeNil)
			_ = page.Body.Close()
			docs, err := http.Get(srv.URL + "/openapi.yaml")
			convey.So(err, convey.ShouldBeNil)
			_ = docs.Body.Close()

			convey.Convey("Then both should be served", func() {
				convey.So(page.StatusCode, convey.ShouldEqual, http.StatusOK)
				convey.So(docs.StatusCode, convey.ShouldEqual, http.StatusOK)
			})
		})

		convey.Convey("When an allowed origin sends a preflight", func() {
			req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/substitutions", nil)
			req.Header.Set("Origin", "http://bench.test")
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			resp, err := http.DefaultClient.Do(req)
			convey.So(err, convey.ShouldBeNil)
			_ = resp.Body.Close()

			convey.Convey("Then CORS headers should allow it", func() {
				convey.So(resp.Header.Get("Access-Control-Allow-Origin"), convey.ShouldEqual, "http://bench.test")
			})
		})

		convey.Convey("When another origin calls the API", func() {
			req, _ := http.NewRequest(http.MethodGet, srv.URL+"/kinds", nil)
			req.Header.Set("Origin", "http://elsewhere.test")
			resp, err := http.DefaultClient.Do(req)
			convey.So(err, convey.ShouldBeNil)
			_ = resp.Body.Close()

			convey.Convey("Then no allow header should be sent", func() {
				convey.So(resp.Header.Get("Access-Control-Allow-Origin"), convey.ShouldBeEmpty)
			})
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a configuration with a free port", t, func() {
		cfg := config.New()
		cfg.Addr = "127.0.0.1:0"

		convey.Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- run(ctx, cfg, logger.Get()) }()
			cancel()

			convey.Convey("Then run should return without error", func() {
				select {
				case err := <-done:
					convey.So(err, convey.ShouldBeNil)
				case <-time.After(5 * time.Second):
					convey.So("run did not return", convey.ShouldBeEmpty)
				}
			})
		})

		convey.Convey("When the address is invalid", func() {
			cfg.Addr = "256.0.0.1:bad"
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			convey.Convey("Then run should report the listen error", func() {
				convey.So(run(ctx, cfg, logger.Get()), convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsUpdaters(t *testing.T) {
	convey.Convey("Given the metrics updaters", t, func() {
		convey.Convey("When they run until their context expires", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			svc := app.New()

			convey.Convey("Then they should not panic", func() {
				convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
				convey.So(func() { startServiceMetricsUpdater(ctx, svc) }, convey.ShouldNotPanic)
				convey.So(updateSystemMetrics, convey.ShouldNotPanic)
				convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
			})
		})
	})
}

func TestConfigFromEnvironment(t *testing.T) {
	convey.Convey("Given BENCH_ variables", t, func() {
		_ = os.Setenv("BENCH_ADDR", ":8181")
		_ = os.Setenv("BENCH_COMMAND_QUEUE_SIZE", "16")
		defer func() {
			_ = os.Unsetenv("BENCH_ADDR")
			_ = os.Unsetenv("BENCH_COMMAND_QUEUE_SIZE")
		}()

		convey.Convey("Then the service should pick them up", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			svc := app.New(serviceOptions(cfg, logger.Get())...)
			convey.So(svc.GetStats()["queue_size"], convey.ShouldEqual, 16)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8181")
		})
	})
}
