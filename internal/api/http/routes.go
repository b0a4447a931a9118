package httpapi

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/hydromet/internal/hydromet"
)

var validate = validator.New()

// ErrorHandler renders every error as a JSON body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *hydromet.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/report", func(c *fiber.Ctx) error {
		report, err := latest(service)
		if err != nil {
			return err
		}
		return c.JSON(report)
	})

	v1.Get("/reports", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"reports": service.History()})
	})

	v1.Get("/summary", func(c *fiber.Ctx) error {
		report, err := latest(service)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := hydromet.WriteSummary(&buf, report); err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Send(buf.Bytes())
	})

	v1.Get("/observations", func(c *fiber.Ctx) error {
		report, err := latest(service)
		if err != nil {
			return err
		}

		date := c.Query("date")
		if date == "" {
			return c.JSON(report.Store)
		}
		if _, err := service.Format().Parse(date); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid date: "+err.Error())
		}
		bucket, ok := report.Store.Bucket(date)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no observations for requested date")
		}
		return c.JSON(bucket)
	})

	v1.Get("/chart", func(c *fiber.Ctx) error {
		q := chartQuery{Label: c.Query("label", string(hydromet.LabelTimeDay))}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := latest(service)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"series": hydromet.TemperatureSeries,
			"points": report.Store.ChartPoints(hydromet.LabelStyle(q.Label), service.Format()),
		})
	})

	v1.Get("/temperature", func(c *fiber.Ctx) error {
		var q temperatureQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := latest(service)
		if err != nil {
			return err
		}
		point, ok := report.Store.FindObservationTime(q.Value, q.Epsilon)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "temperature was not observed")
		}
		return c.JSON(point)
	})
}

func latest(service *hydromet.Service) (hydromet.Report, error) {
	report, err := service.Latest()
	if err != nil {
		if errors.Is(err, hydromet.ErrNoReport) {
			return report, fiber.NewError(fiber.StatusNotFound, "no report available yet")
		}
		return report, fiber.NewError(fiber.StatusInternalServerError, "failed to load report")
	}
	if report.Store == nil {
		return report, fiber.NewError(fiber.StatusInternalServerError, "report has no observations")
	}
	return report, nil
}

// chartQuery holds query parameters for the chart endpoint.
type chartQuery struct {
	Label string `validate:"oneof=time-day date-time"`
}

// temperatureQuery holds query parameters for the temperature lookup.
type temperatureQuery struct {
	Value   float64
	Epsilon float64 `validate:"gte=0,lte=5"`
}

func (q *temperatureQuery) bind(c *fiber.Ctx) error {
	raw := c.Query("value")
	if raw == "" {
		return errors.New("value query parameter is required")
	}
	v, err := strconv.ParseFloat(hydromet.NormalizeDecimal(raw), 64)
	if err != nil {
		return errors.New("value must be a decimal number")
	}
	q.Value = v

	if raw := c.Query("epsilon"); raw != "" {
		eps, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return errors.New("epsilon must be a decimal number")
		}
		q.Epsilon = eps
	}
	return nil
}
