package property

import (
	"fmt"
	"log"
	"time"

	"parms/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Properties"

var exportHeader = []any{
	"Property No.", "Item Name", "Serial No.", "Model No.", "Acquisition Date",
	"Acquisition Cost", "Unit", "Quantity", "Fund", "Location", "Accountable Officer",
	"Condition", "Color", "Description", "Remarks", "Lookup URL",
}

// WriteRegister builds the property register workbook.
func WriteRegister(props []models.Property) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(exportHeader), 1)
	if err := f.SetCellStyle(exportSheet, "A1", last, bold); err != nil {
		return nil, err
	}

	for i := range props {
		p := &props[i]
		acquired := ""
		if p.AcquisitionDate != nil {
			acquired = p.AcquisitionDate.Format(dateLayout)
		}
		cost, _ := p.AcquisitionCost.Float64()
		row := []any{
			p.PropertyNumber, p.ItemName, p.SerialNo, p.ModelNo, acquired,
			cost, p.UnitOfMeasure, p.Quantity, p.Fund, p.LocationName(), p.AccountableName(),
			p.ConditionName(), p.Color, p.Description, p.Remarks, p.QRCodeURL,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
		costCell, _ := excelize.CoordinatesToCellName(6, i+2)
		if err := f.SetCellStyle(exportSheet, costCell, costCell, money); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "B", 24); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(exportSheet, "C", "P", 18); err != nil {
		return nil, err
	}
	return f, nil
}

// GET /properties/export
func ExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		props, err := List(c.UserContext())
		if err != nil {
			log.Printf("property export: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load properties")
		}
		props = Filter(props, c.Query("q"))

		f, err := WriteRegister(props)
		if err != nil {
			log.Printf("property export: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build export")
		}
		defer f.Close()

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build export")
		}

		name := fmt.Sprintf("property-register-%s.xlsx", time.Now().Format("20060102"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Attachment(name)
		return c.Send(buf.Bytes())
	}
}
