package router

import (
	"seatmap_manager/handler"
	"seatmap_manager/middleware"
	"seatmap_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1")

	seatMap := v1.Group("/seat-map")
	seatMap.Post("/", middleware.Protected(), validate.CreateSeatMap(), handler.CreateSeatMap)
	seatMap.Get("/showing/:showingId", middleware.OptionalJWT(), validate.GetById("showingId"), handler.GetSeatMapsByShowingId)
	seatMap.Get("/live/:seatMapId", middleware.OptionalJWT(), websocket.New(handler.SeatMapLive))
	seatMap.Get("/:seatMapId", middleware.OptionalJWT(), validate.GetById("seatMapId"), handler.GetSeatMapById)
	seatMap.Get("/:seatMapId/qr", validate.GetById("seatMapId"), handler.GetSeatMapQR)
	seatMap.Put("/:seatMapId", middleware.Protected(), validate.UpdateSeatMap("seatMapId"), handler.UpdateSeatMap)
	seatMap.Patch("/:seatMapId/status", middleware.Protected(), validate.UpdateStatus("seatMapId"), handler.UpdateSeatMapStatus)

	section := v1.Group("/section")
	section.Post("/", middleware.Protected(), validate.CreateSection(), handler.CreateSection)
	section.Put("/:sectionId", middleware.Protected(), validate.UpdateSection("sectionId"), handler.UpdateSection)

	v1.Post("/section-attribute", middleware.Protected(), validate.CreateSectionAttribute(), handler.CreateSectionAttribute)

	seat := v1.Group("/seat")
	seat.Post("/batch", middleware.Protected(), validate.CreateSeatsBatch(), handler.CreateSeatsBatch)
	seat.Patch("/status", middleware.Protected(), validate.UpdateSeatStatus(), handler.UpdateSeatStatus)
	seat.Post("/lock", middleware.OptionalJWT(), validate.LockSeats(), handler.LockSeats)
	seat.Post("/release", middleware.OptionalJWT(), validate.ReleaseSeats(), handler.ReleaseSeats)

	element := v1.Group("/seat-map-element")
	element.Post("/", middleware.Protected(), validate.CreateSeatMapElement(), handler.CreateSeatMapElement)
	element.Patch("/:elementId/display", middleware.Protected(), validate.UpdateStatus("elementId"), handler.UpdateElementDisplay)
}
