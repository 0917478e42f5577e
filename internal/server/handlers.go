package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/DiasStein2/NeHazars/internal/scan"
	"github.com/DiasStein2/NeHazars/internal/stats"
)

// computeAndCache re-runs the pipeline and stores the fresh payload.
func (s *Server) computeAndCache() (*stats.Payload, error) {
	dir, _, err := scan.ResolveSource(s.cfg.DataDir, s.cfg.UploadDir)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	result, err := stats.Analyze(dir, s.resolver, stats.Options{ExtraStopwords: s.cfg.ExtraStopwords})
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	payload := result.Payload()
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	if err := s.store.SaveResult(data, payload.Meta.TotalMessages, payload.Meta.UserMessages); err != nil {
		return nil, err
	}
	return payload, nil
}

// ensureStats returns the cached payload, computing one when the store is
// empty or the cached bytes no longer decode.
func (s *Server) ensureStats() (*stats.Payload, error) {
	data, err := s.store.Latest()
	if err != nil {
		return nil, err
	}
	if data != nil {
		var p stats.Payload
		if err := json.Unmarshal(data, &p); err == nil {
			return &p, nil
		}
		slog.Warn("cached payload corrupted, recomputing")
		if err := s.store.Clear(); err != nil {
			return nil, err
		}
	}
	return s.computeAndCache()
}

type summary struct {
	TotalMessages    int    `json:"totalMessages"`
	TotalUsers       int    `json:"totalUsers"`
	ActiveDays       int    `json:"activeDays"`
	PeakActivityDate string `json:"peakActivityDate"`
	PeakMessageCount int    `json:"peakMessageCount"`
}

func buildSummary(p *stats.Payload) summary {
	sm := summary{
		TotalMessages: p.Meta.UserMessages,
		TotalUsers:    len(p.Meta.Users),
	}
	for _, entry := range p.MessagesPerDay {
		if entry.Value > 0 {
			sm.ActiveDays++
		}
		if entry.Value > sm.PeakMessageCount {
			sm.PeakMessageCount = entry.Value
			sm.PeakActivityDate = entry.Day
		}
	}
	return sm
}

func (s *Server) handleSummary(c *fiber.Ctx) error {
	p, err := s.ensureStats()
	if err != nil {
		return err
	}
	return c.JSON(buildSummary(p))
}

func (s *Server) handleActivity(c *fiber.Ctx) error {
	p, err := s.ensureStats()
	if err != nil {
		return err
	}

	timeline := make([]fiber.Map, 0, len(p.MessagesPerDay))
	for _, entry := range p.MessagesPerDay {
		timeline = append(timeline, fiber.Map{"date": entry.Day, "messages": entry.Value})
	}
	sort.Slice(timeline, func(i, j int) bool {
		return timeline[i]["date"].(string) < timeline[j]["date"].(string)
	})

	hourMap := make(map[int]int, len(p.MessagesPerHour))
	for _, entry := range p.MessagesPerHour {
		hourMap[entry.Hour] = entry.Value
	}
	hourly := make([]fiber.Map, 0, 24)
	for hour := 0; hour < 24; hour++ {
		hourly = append(hourly, fiber.Map{
			"hour":  hour,
			"label": fmt.Sprintf("%d:00", hour),
			"count": hourMap[hour],
		})
	}

	weekday := make([]fiber.Map, 0, len(p.WeekdayCounts))
	for _, entry := range p.WeekdayCounts {
		weekday = append(weekday, fiber.Map{"day": entry.Day[:3], "count": entry.Count})
	}

	return c.JSON(fiber.Map{
		"timeline": timeline,
		"hourly":   hourly,
		"weekday":  weekday,
	})
}

func (s *Server) handleUsers(c *fiber.Ctx) error {
	p, err := s.ensureStats()
	if err != nil {
		return err
	}

	replies := make(map[string]int, len(p.RepliesPerUser))
	for _, entry := range p.RepliesPerUser {
		replies[entry.User] = entry.ReplyCount
	}

	total := 0
	for _, entry := range p.MessagesPerUser {
		total += entry.Value
	}
	if total == 0 {
		total = 1
	}

	users := make([]fiber.Map, 0, len(p.MessagesPerUser))
	for i, entry := range p.MessagesPerUser {
		contribution := math.Round(float64(entry.Value)/float64(total)*10000) / 100
		users = append(users, fiber.Map{
			"id":           i + 1,
			"name":         entry.User,
			"messages":     entry.Value,
			"replies":      replies[entry.User],
			"contribution": contribution,
		})
	}
	return c.JSON(users)
}

func (s *Server) handleContent(c *fiber.Ctx) error {
	p, err := s.ensureStats()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"types":        p.ContentTypes,
		"lengthDist":   p.LengthDistribution,
		"emojis":       p.TopEmojis,
		"topWords":     p.TopWords,
		"inactiveDays": p.InactiveDays,
	})
}

func (s *Server) handleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "no files uploaded")
	}
	files := form.File["files"]
	if len(files) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no files uploaded")
	}

	for _, fh := range files {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if ext != ".html" && ext != ".htm" {
			return fiber.NewError(fiber.StatusBadRequest,
				"only Telegram HTML exports (.html) are supported")
		}
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}

	// drop the previous export so re-uploads never mix files
	if old, err := filepath.Glob(filepath.Join(s.cfg.UploadDir, "*.htm*")); err == nil {
		for _, path := range old {
			os.Remove(path)
		}
	}

	saved := make([]string, 0, len(files))
	for i, fh := range files {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		name := filepath.Base(fh.Filename)
		if name == "" || name == "." || name == string(filepath.Separator) {
			if i == 0 {
				name = "messages" + ext
			} else {
				name = fmt.Sprintf("messages%d%s", i+1, ext)
			}
		}

		dest := filepath.Join(s.cfg.UploadDir, name)
		if _, err := os.Stat(dest); err == nil {
			stem := strings.TrimSuffix(name, filepath.Ext(name))
			dest = filepath.Join(s.cfg.UploadDir, fmt.Sprintf("%s_%d%s", stem, i+1, filepath.Ext(name)))
		}
		if err := c.SaveFile(fh, dest); err != nil {
			return fmt.Errorf("save upload: %w", err)
		}
		saved = append(saved, filepath.Base(dest))
	}

	payload, err := s.computeAndCache()
	if err != nil {
		return err
	}

	message := "File processed"
	if len(saved) > 1 {
		message = "Files processed"
	}
	return c.JSON(fiber.Map{
		"status":    "ok",
		"filename":  saved[0],
		"filenames": saved,
		"fileCount": len(saved),
		"message":   message,
		"summary":   buildSummary(payload),
	})
}
