package campaign

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"unnichat-backend/internal/auth"
	"unnichat-backend/internal/logger"
	"unnichat-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GET /api/logs?template_type=&chip_id=&from=&to=&q=
func ListLogsHandler(s Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.IdentityFrom(c)
		if err != nil {
			return err
		}

		var filter store.LogFilter
		if err := c.QueryParser(&filter); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")
		}

		logs, err := s.ListLogs(c.UserContext(), identity, filter)
		if err != nil {
			return err
		}
		return c.JSON(logs)
	}
}

// POST /api/logs
func CreateLogHandler(s Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.IdentityFrom(c)
		if err != nil {
			return err
		}

		var body store.CreateLogInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		id, err := s.CreateLog(c.UserContext(), identity, body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(CreatedResponse{ID: id})
	}
}

// GET /api/logs/export
// Same filters as the listing, returned as an .xlsx workbook.
func ExportLogsHandler(s Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.IdentityFrom(c)
		if err != nil {
			return err
		}

		var filter store.LogFilter
		if err := c.QueryParser(&filter); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")
		}

		logs, err := s.ListLogs(c.UserContext(), identity, filter)
		if err != nil {
			return err
		}

		buf, err := writeLogSheet(logs)
		if err != nil {
			return err
		}

		c.Attachment(fmt.Sprintf("disparos-%s.xlsx", time.Now().Format("20060102")))
		c.Set(fiber.HeaderContentType, xlsxContentType)
		return c.Send(buf.Bytes())
	}
}

type ImportResponse struct {
	Imported int                   `json:"imported"`
	IDs      []uint                `json:"ids"`
	Failed   []store.ImportFailure `json:"failed"`
}

// POST /api/logs/import
// Multipart upload, field "file". Valid rows are stored, the rest reported.
func ImportLogsHandler(s Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.IdentityFrom(c)
		if err != nil {
			return err
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "file is required")
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "only .xlsx files are accepted")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fmt.Errorf("open upload: %w", err)
		}
		defer file.Close()

		rows, failed, err := readLogSheet(file)
		if err != nil {
			return err
		}

		res, err := s.ImportLogs(c.UserContext(), identity, rows)
		if err != nil {
			return err
		}

		failed = append(failed, res.Failed...)
		sort.SliceStable(failed, func(i, j int) bool { return failed[i].Line < failed[j].Line })

		logger.FromCtx(c).Info().
			Str("file", fileHeader.Filename).
			Int("imported", res.Imported).
			Int("failed", len(failed)).
			Msg("logs imported")

		return c.JSON(ImportResponse{Imported: res.Imported, IDs: res.IDs, Failed: failed})
	}
}
