// seatmapctl đồng bộ sơ đồ ghế của một suất chiếu từ file YAML lên API.
//
//	seatmapctl --file layout.yaml --base-url http://localhost:8002 --token $TOKEN
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	flag "github.com/spf13/pflag"

	"seatmap_manager/client"
	"seatmap_manager/config"
	"seatmap_manager/geometry"
	"seatmap_manager/model"
	"seatmap_manager/reconcile"
	"seatmap_manager/scene"
)

func main() {
	var (
		baseURL   = flag.String("base-url", config.Default("SEATMAP_API", "http://localhost:8002"), "API server address")
		token     = flag.String("token", config.Config("SEATMAP_TOKEN"), "organizer access token")
		showingId = flag.Uint("showing", 0, "showing id (overrides showingId in the layout file)")
		file      = flag.StringP("file", "f", "layout.yaml", "layout file")
		canvas    = flag.String("canvas", "", "treat layout coordinates as pixels of a WIDTHxHEIGHT canvas")
		dryRun    = flag.Bool("dry-run", false, "apply the layout locally without saving")
		timeout   = flag.Duration("timeout", time.Minute, "overall save timeout")
	)
	flag.Parse()

	layout, err := LoadLayout(*file)
	if err != nil {
		log.Fatal(err)
	}
	if *showingId != 0 {
		layout.ShowingId = *showingId
	}
	if layout.ShowingId == 0 {
		log.Fatal("showing id is required (--showing or showingId in the layout)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	api := client.New(client.Config{BaseURL: *baseURL, Session: client.StaticToken(*token)})
	existing, err := api.GetSeatMapsByShowingId(ctx, layout.ShowingId)
	if err != nil {
		log.Fatalf("Không lấy được sơ đồ hiện có: %v", err)
	}
	prior, doc, err := openDocument(existing, layout)
	if err != nil {
		log.Fatal(err)
	}

	var proj *geometry.Projection
	if *canvas != "" {
		size, err := ParseCanvas(*canvas)
		if err != nil {
			log.Fatal(err)
		}
		p := doc.Projection(size)
		proj = &p
	}

	session := scene.NewSession(doc, scene.DefaultOptions())
	if err := layout.Apply(session, proj); err != nil {
		log.Fatal(err)
	}
	printSummary(doc)
	if *dryRun {
		return
	}

	result, err := reconcile.NewSaver(api, reconcile.Options{}).SaveAgainst(ctx, doc, prior)
	if result != nil {
		log.Printf("Seat map %d: tạo %d, cập nhật %d, xoá %d khu vực", result.SeatMapId, len(result.Created), len(result.Updated), len(result.Deleted))
	}
	if err != nil {
		var saveErr *reconcile.SaveError
		if errors.As(err, &saveErr) {
			for _, f := range saveErr.Failures {
				log.Printf("  %v", f)
			}
		}
		log.Fatal(err)
	}
}

// openDocument dùng seat map đang hoạt động của suất chiếu nếu có, ngược lại tạo mới.
func openDocument(existing []model.SeatMap, layout *Layout) (*model.SeatMap, *scene.Document, error) {
	for i := range existing {
		if existing[i].Status == model.SeatMapActive {
			prior := &existing[i]
			doc, err := scene.FromModel(*prior)
			if err != nil {
				return nil, nil, err
			}
			vb, _ := geometry.ParseViewBox(layout.ViewBox)
			doc.ViewBox = vb
			return prior, doc, nil
		}
	}
	vb, err := geometry.ParseViewBox(layout.ViewBox)
	if err != nil {
		return nil, nil, err
	}
	doc, err := scene.New(layout.Name, layout.ShowingId, vb)
	return nil, doc, err
}

func printSummary(doc *scene.Document) {
	g := doc.Groups()
	fmt.Printf("%s (viewBox %s): %d sân khấu, %d khu vực bán vé\n", doc.Name, doc.ViewBox, len(g.Stages), len(g.Salable))
	for _, sec := range doc.Sections() {
		fmt.Printf("  %-20s %-10s %4d ghế  %+v\n", sec.Name, sec.Ref, len(sec.Seats), sec.Attribute.Rect())
	}
}
