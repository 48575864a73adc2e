package workers

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"avalia/models"

	"github.com/jinzhu/gorm"
)

// StartAttachmentsCleaner starts a loop that removes stored files no longer
// referenced by any attachment row. Substituir um anexo apaga a linha antiga
// na transação, mas o arquivo dela fica em disco; este varredor fecha a conta.
func StartAttachmentsCleaner(db *gorm.DB, storageDir string) {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			sweepOrphans(db, storageDir)
		}
	}()
}

func sweepOrphans(db *gorm.DB, storageDir string) {
	entries, err := os.ReadDir(storageDir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("attachments cleaner: read dir error: %v", err)
		}
		return
	}

	// margem de 1h: um upload pode existir em disco antes do commit da linha
	cutoff := time.Now().Add(-1 * time.Hour)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		var count int
		err = db.Model(&models.Attachment{}).
			Where("file_name = ?", entry.Name()).
			Count(&count).Error
		if err != nil {
			log.Printf("attachments cleaner: query error: %v", err)
			continue
		}
		if count > 0 {
			continue
		}

		path := filepath.Join(storageDir, entry.Name())
		if err := os.Remove(path); err != nil {
			log.Printf("attachments cleaner: remove error: %v", err)
			continue
		}
		log.Printf("attachments cleaner: removed orphan file %s", entry.Name())
	}
}
