package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/arrows/internal/adapters/storage"
	"github.com/okian/arrows/internal/domain/board"
	"github.com/okian/arrows/internal/domain/player"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFileGateway_Load(t *testing.T) {
	Convey("Given a gateway pointing at a missing file", t, func() {
		path := filepath.Join(t.TempDir(), "arrows_data.json")
		gw := storage.NewFileGateway(storage.WithPath(path))

		Convey("When loading", func() {
			doc, err := gw.Load(context.Background())

			Convey("Then a fresh default document comes back", func() {
				So(err, ShouldBeNil)
				So(doc.Players, ShouldBeEmpty)
				So(doc.Leaderboard, ShouldBeEmpty)
				So(doc.Catalog.Empty(), ShouldBeFalse)
			})

			Convey("And no file was created as a side effect", func() {
				_, statErr := os.Stat(path)
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})
		})
	})

	Convey("Given a corrupt data file", t, func() {
		path := filepath.Join(t.TempDir(), "arrows_data.json")
		So(os.WriteFile(path, []byte("{not json"), 0o644), ShouldBeNil)
		gw := storage.NewFileGateway(storage.WithPath(path))

		Convey("When loading", func() {
			_, err := gw.Load(context.Background())

			Convey("Then the corruption is reported", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, storage.ErrCorrupt)
			})
		})
	})

	Convey("Given a document with missing sections", t, func() {
		path := filepath.Join(t.TempDir(), "arrows_data.json")
		So(os.WriteFile(path, []byte(`{"users": null}`), 0o644), ShouldBeNil)
		gw := storage.NewFileGateway(storage.WithPath(path))

		Convey("When loading", func() {
			doc, err := gw.Load(context.Background())

			Convey("Then the sections are repaired", func() {
				So(err, ShouldBeNil)
				So(doc.Players, ShouldNotBeNil)
				So(doc.Leaderboard, ShouldNotBeNil)
				So(doc.Catalog.Empty(), ShouldBeFalse)
			})
		})
	})
}

func TestFileGateway_SaveLoadRoundtrip(t *testing.T) {
	Convey("Given a populated document", t, func() {
		path := filepath.Join(t.TempDir(), "arrows_data.json")
		gw := storage.NewFileGateway(storage.WithPath(path))

		doc := storage.NewDocument()
		doc.Players["777"] = &player.Record{
			DisplayName:      "@nova",
			Coins:            130,
			BestLevel:        4,
			Cosmetics:        []string{"default", "fire"},
			SelectedCosmetic: "fire",
			CreatedAt:        1000,
			LastActiveAt:     2000,
		}
		doc.Leaderboard = board.Upsert(doc.Leaderboard, "777", "@nova", 4, 130, 2000)

		Convey("When saved and loaded back", func() {
			So(gw.Save(context.Background(), doc), ShouldBeNil)
			loaded, err := gw.Load(context.Background())

			Convey("Then the document survives the roundtrip", func() {
				So(err, ShouldBeNil)
				So(loaded.Players, ShouldHaveLength, 1)
				rec := loaded.Players["777"]
				So(rec.DisplayName, ShouldEqual, "@nova")
				So(rec.Coins, ShouldEqual, 130)
				So(rec.BestLevel, ShouldEqual, 4)
				So(rec.SelectedCosmetic, ShouldEqual, "fire")
				So(loaded.Leaderboard, ShouldHaveLength, 1)
				So(loaded.Leaderboard[0].Score, ShouldEqual, 4)
			})

			Convey("And no temp files are left behind", func() {
				matches, globErr := filepath.Glob(path + ".tmp-*")
				So(globErr, ShouldBeNil)
				So(matches, ShouldBeEmpty)
			})
		})

		Convey("When saved twice", func() {
			So(gw.Save(context.Background(), doc), ShouldBeNil)
			doc.Players["777"].Coins = 200
			So(gw.Save(context.Background(), doc), ShouldBeNil)

			Convey("Then the file holds the latest state", func() {
				loaded, err := gw.Load(context.Background())
				So(err, ShouldBeNil)
				So(loaded.Players["777"].Coins, ShouldEqual, 200)
			})
		})
	})
}
