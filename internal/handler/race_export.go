package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/rally-api/internal/domain/entity"
	"github.com/yourusername/rally-api/internal/handler/dto"
)

var exportHeaders = []string{"Место", "Машина", "Команда", "Гонщик", "Финиш", "Время (с)", "Приз"}

// ExportRaceResults экспортирует результаты заезда в CSV или Excel формате
// GET /api/races/:id/results/export?format=csv|xlsx
func (h *RaceHandler) ExportRaceResults(c *gin.Context) {
	raceID := c.MustGet("raceID").(uint)
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
		return
	}

	race, err := h.raceService.GetRace(raceID)
	if err != nil {
		handleError(c, "RaceHandler", err)
		return
	}

	results, err := h.raceService.GetRaceResults(raceID)
	if err != nil {
		handleError(c, "RaceHandler", err)
		return
	}

	filename := exportFilename(race)

	switch format {
	case "xlsx":
		h.exportXLSX(c, results, filename)
	default:
		h.exportCSV(c, results, filename)
	}
}

// exportFilename строит имя файла из названия заезда
func exportFilename(race *entity.Race) string {
	name := slug.Make(race.Name)
	if name == "" {
		name = fmt.Sprintf("race-%d", race.ID)
	}
	return name + "_results"
}

// exportRow возвращает ячейки строки результатов
func exportRow(r *entity.RaceResult) (position, finished, timeSec string) {
	finished = "Нет"
	if r.Finished {
		finished = "Да"
	}
	if r.Position != nil {
		position = strconv.Itoa(*r.Position)
	}
	if r.Finished && r.TimeSeconds != nil {
		timeSec = strconv.FormatFloat(dto.RoundSeconds(*r.TimeSeconds), 'f', 2, 64)
	}
	return position, finished, timeSec
}

// exportCSV экспортирует результаты в CSV с правильным экранированием спецсимволов
func (h *RaceHandler) exportCSV(c *gin.Context, results []entity.RaceResult, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)

	for i := range results {
		r := &results[i]
		position, finished, timeSec := exportRow(r)
		writer.Write([]string{
			position,
			sanitizeForExcel(r.CarName),
			sanitizeForExcel(r.TeamName),
			sanitizeForExcel(r.MemberName),
			finished,
			timeSec,
			strconv.FormatInt(r.PrizeMoney, 10),
		})
	}
}

// exportXLSX экспортирует результаты в Excel с использованием StreamWriter
func (h *RaceHandler) exportXLSX(c *gin.Context, results []entity.RaceResult, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Результаты"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[RaceHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, name := range exportHeaders {
		headers[i] = name
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[RaceHandler] Ошибка записи заголовков: %v", err)
	}

	for i := range results {
		r := &results[i]
		rowNum := i + 2
		cell := fmt.Sprintf("A%d", rowNum)

		_, finished, _ := exportRow(r)
		var position, timeSec interface{}
		if r.Position != nil {
			position = *r.Position
		}
		if r.Finished && r.TimeSeconds != nil {
			timeSec = dto.RoundSeconds(*r.TimeSeconds)
		}

		row := []interface{}{
			position,
			sanitizeForExcel(r.CarName),
			sanitizeForExcel(r.TeamName),
			sanitizeForExcel(r.MemberName),
			finished,
			timeSec,
			r.PrizeMoney,
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[RaceHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[RaceHandler] Ошибка при Flush: %v", err)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[RaceHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
