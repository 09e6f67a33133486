// Restores research-author links from the legacy CSV export. Author rows were
// folded into the users table, so legacy author UUIDs map to users through the
// username pattern author_<uuid prefix> created during the consolidation.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ergin84/ShareLand/src/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func findUserByAuthorUUID(db *gorm.DB, authorUUID string) *models.User {
	if len(authorUUID) < 8 {
		return nil
	}
	prefix := authorUUID[:8]

	var user models.User
	if err := db.Where("username = ?", "author_"+prefix).First(&user).Error; err == nil {
		return &user
	}
	if err := db.Where("email LIKE ?", "author."+prefix+"%").First(&user).Error; err == nil {
		return &user
	}
	return nil
}

func main() {
	csvPath := flag.String("csv", "database_csv_exports/research_author.csv", "CSV with columns: id_research,id,id_author")
	dryRun := flag.Bool("dry-run", false, "report without writing")
	flag.Parse()

	dsn := os.Getenv("DB_DSN")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("failed to open CSV: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		log.Fatalf("failed to read CSV header: %v", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"id_research", "id_author"} {
		if _, ok := col[required]; !ok {
			log.Fatalf("CSV missing column %q", required)
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("failed to read CSV: %v", err)
	}

	var created, existed, skipped, errored int
	uuidToUser := map[string]*models.User{}

	err = db.Transaction(func(tx *gorm.DB) error {
		for i, row := range rows {
			researchID, err := strconv.Atoi(strings.TrimSpace(row[col["id_research"]]))
			if err != nil {
				log.Printf("Row %d: bad research id %q", i+1, row[col["id_research"]])
				errored++
				continue
			}
			authorUUID := strings.TrimSpace(row[col["id_author"]])

			var research models.Research
			if err := tx.First(&research, researchID).Error; err != nil {
				log.Printf("Row %d: research %d not found, skipping", i+1, researchID)
				skipped++
				continue
			}

			user, seen := uuidToUser[authorUUID]
			if !seen {
				user = findUserByAuthorUUID(tx, authorUUID)
				uuidToUser[authorUUID] = user
			}
			if user == nil {
				log.Printf("Row %d: author %s mapping not found, skipping", i+1, authorUUID)
				errored++
				continue
			}

			var link models.ResearchAuthor
			result := tx.Where("id_research = ? AND id_author = ?", research.Id, user.Id).First(&link)
			if result.Error == nil {
				existed++
				continue
			}
			created++
			if *dryRun {
				continue
			}
			link = models.ResearchAuthor{IdResearch: &research.Id, IdAuthor: &user.Id}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
		}
		if *dryRun {
			// Roll back any incidental writes.
			return gorm.ErrInvalidTransaction
		}
		return nil
	})
	if err != nil && !(*dryRun && err == gorm.ErrInvalidTransaction) {
		log.Fatalf("restore failed: %v", err)
	}

	log.Printf("created=%d, existed=%d, skipped=%d, errors=%d, dry_run=%v",
		created, existed, skipped, errored, *dryRun)
}
