// Importer loads the google scraping fleet's CSV exports into the database.
// Rows that collide with existing primary keys or unique names are skipped,
// so re-running an import is safe.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"adboard/internal/config"
	"adboard/internal/db"
	"adboard/internal/logger"
	"adboard/internal/models"
	"adboard/internal/service"
)

const insertBatchSize = 500

func main() {
	dir := flag.String("dir", ".", "directory containing the csv exports")
	flag.Parse()

	cfgPath := os.Getenv("ADB_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	envOnly := false
	if envOnlyRaw := os.Getenv("ADB_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}
	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	steps := []struct {
		file   string
		header bool
		run    func(*gorm.DB, [][]string) (int, error)
	}{
		{"bots_postgres.csv", true, importBots},
		{"ads_postgres.csv", true, importAds},
		{"tag_postgres.csv", false, importTags},
		{"ad_tag_postgres.csv", true, importAdTags},
	}
	for _, step := range steps {
		rows, err := readCSV(filepath.Join(*dir, step.file), step.header)
		if err != nil {
			logger.Fatal("read csv failed", zap.String("file", step.file), zap.Error(err))
		}
		n, err := step.run(dbConn.Gorm, rows)
		if err != nil {
			logger.Fatal("import failed", zap.String("file", step.file), zap.Error(err))
		}
		logger.Info("imported", zap.String("file", step.file), zap.Int("rows", n))
	}
}

func readCSV(path string, header bool) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	if header {
		if _, err := r.Read(); err != nil && err != io.EOF {
			return nil, err
		}
	}
	return r.ReadAll()
}

// bots_postgres.csv: id, username, dob, gender, fName, lName,
// otherTermsCategory, password, locLat, locLong, type, politicalRanking
func importBots(gdb *gorm.DB, rows [][]string) (int, error) {
	bots := make([]models.GoogleBot, 0, len(rows))
	for i, row := range rows {
		if len(row) < 12 {
			return 0, fmt.Errorf("bots row %d: want 12 columns, got %d", i+1, len(row))
		}
		bot := models.GoogleBot{
			ID:                 orNewUUID(row[0]),
			Username:           row[1],
			DOB:                parseTime(row[2]),
			Gender:             row[3],
			FName:              row[4],
			LName:              row[5],
			OtherTermsCategory: parseInt(row[6]),
			Password:           row[7],
			LocLat:             parseFloat(row[8]),
			LocLong:            parseFloat(row[9]),
			Type:               row[10],
			PoliticalRanking:   parseInt(row[11]),
		}
		bots = append(bots, bot)
	}
	if len(bots) == 0 {
		return 0, nil
	}
	err := gdb.Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(bots, insertBatchSize).Error
	return len(bots), err
}

// ads_postgres.csv: id, botId, createdAt, image, headline, html, adLink,
// loggedIn, seenOn
func importAds(gdb *gorm.DB, rows [][]string) (int, error) {
	ads := make([]models.GoogleAd, 0, len(rows))
	for i, row := range rows {
		if len(row) < 9 {
			return 0, fmt.Errorf("ads row %d: want 9 columns, got %d", i+1, len(row))
		}
		ad := models.GoogleAd{
			ID:        orNewUUID(row[0]),
			BotID:     row[1],
			CreatedAt: parseTime(row[2]),
			Image:     strPtr(row[3]),
			Headline:  strPtr(row[4]),
			HTML:      strPtr(row[5]),
			AdLink:    strPtr(row[6]),
			LoggedIn:  parseBool(row[7]),
			SeenOn:    strPtr(row[8]),
		}
		ads = append(ads, ad)
	}
	if len(ads) == 0 {
		return 0, nil
	}
	err := gdb.Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(ads, insertBatchSize).Error
	return len(ads), err
}

// tag_postgres.csv: id, name (no header row)
func importTags(gdb *gorm.DB, rows [][]string) (int, error) {
	tags := make([]models.GoogleTag, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return 0, fmt.Errorf("tags row %d: want 2 columns, got %d", i+1, len(row))
		}
		tags = append(tags, models.GoogleTag{
			ID:   int64(parseInt(row[0])),
			Name: service.NormalizeTagName(row[1]),
		})
	}
	if len(tags) == 0 {
		return 0, nil
	}
	err := gdb.Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(tags, insertBatchSize).Error
	return len(tags), err
}

// ad_tag_postgres.csv: tagId, adId
func importAdTags(gdb *gorm.DB, rows [][]string) (int, error) {
	adTags := make([]models.GoogleAdTag, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return 0, fmt.Errorf("ad tags row %d: want 2 columns, got %d", i+1, len(row))
		}
		adTags = append(adTags, models.GoogleAdTag{
			TagID: int64(parseInt(row[0])),
			AdID:  row[1],
		})
	}
	if len(adTags) == 0 {
		return 0, nil
	}
	err := gdb.Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(adTags, insertBatchSize).Error
	return len(adTags), err
}

func orNewUUID(s string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return uuid.NewString()
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseInt(s string) int {
	i, _ := strconv.Atoi(strings.TrimSpace(s))
	return i
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(s))
	return b
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05-07", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
