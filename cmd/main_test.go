package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/arrows/internal/adapters/storage"
	app "github.com/okian/arrows/internal/app"
	"github.com/okian/arrows/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newMainTestService(t *testing.T) *app.Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arrows_data.json")
	svc := app.New(app.WithGateway(storage.NewFileGateway(storage.WithPath(path))))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it should run until the context expires", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing service metrics updater", func() {
			svc := newMainTestService(t)

			convey.Convey("Then it should run until the context expires", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startServiceMetricsUpdater(ctx, svc)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(func() {
					updateSystemMetrics()
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing service metrics update", func() {
			svc := newMainTestService(t)
			_, err := svc.SubmitScore(context.Background(), "777", "@nova", 4, 30)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then it should publish the document gauges without panicking", func() {
				convey.So(func() {
					updateServiceMetrics(svc)
				}, convey.ShouldNotPanic)

				stats := svc.GetStats()
				convey.So(stats["totalPlayers"], convey.ShouldEqual, 1)
				convey.So(stats["totalCoins"], convey.ShouldEqual, 30)
			})
		})
	})
}
