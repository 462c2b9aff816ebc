package validate

import (
	"errors"
	"slices"

	"github.com/gofiber/fiber/v2"

	"seatmap_manager/model"
	"seatmap_manager/seatgrid"
	"seatmap_manager/utils"
)

var errSeatStatus = errors.New("invalid seat status")

func CreateSeatsBatch() fiber.Handler {
	return body("inputCreateSeatsBatch", "", func(c *fiber.Ctx, input *model.CreateSeatsBatchInput) error {
		spec := seatgrid.Spec{
			Rows: input.Rows, Cols: input.Cols,
			StartRow: input.StartRow, StartCol: input.StartCol,
			CodePrefix: input.CodePrefix,
		}.Normalize()
		if err := spec.Validate(); err != nil {
			return err
		}
		input.StartRow, input.StartCol = spec.StartRow, spec.StartCol
		if input.Status == "" {
			input.Status = model.SeatAvailable
		}
		if !utils.IsValidValueOfConstant(string(input.Status), model.SeatStatuses) {
			return errSeatStatus
		}
		return nil
	})
}

func UpdateSeatStatus() fiber.Handler {
	return body("inputUpdateSeatStatus", "", func(c *fiber.Ctx, input *model.UpdateSeatStatusInput) error {
		if !utils.IsValidValueOfConstant(string(input.Status), model.SeatStatuses) {
			return errSeatStatus
		}
		input.SeatIds = uniqueIds(input.SeatIds)
		return nil
	})
}

func LockSeats() fiber.Handler {
	return body("inputLockSeats", "", func(c *fiber.Ctx, input *model.LockSeatsInput) error {
		input.SeatIds = uniqueIds(input.SeatIds)
		return nil
	})
}

func ReleaseSeats() fiber.Handler {
	return body("inputReleaseSeats", "", func(c *fiber.Ctx, input *model.ReleaseSeatsInput) error {
		input.SeatIds = uniqueIds(input.SeatIds)
		return nil
	})
}

func uniqueIds(ids []uint) []uint {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
