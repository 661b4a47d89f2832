// Command viewer prints a room's message history from a live BadgerDB as a
// table, without going through the server.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"
)

type Config struct {
	BadgerFilepath string `envconfig:"BADGER_FILEPATH" required:"true"`
	// VIEWER_COLOURS enables colorized output for better readability
	Colours bool `envconfig:"VIEWER_COLOURS" default:"true"`
}

// storedMessage mirrors the on-disk record layout of the message store.
type storedMessage struct {
	ID         uint64    `json:"id"`
	Scope      string    `json:"scope"`
	Target     string    `json:"target"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

func main() {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if len(os.Args) != 3 {
		log.Fatalf("usage: %s <scope> <target>", os.Args[0])
	}
	scope, target := os.Args[1], os.Args[2]

	// Read-only mode; BypassLockGuard allows opening while the server holds
	// the directory lock.
	opts := badger.DefaultOptions(cfg.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "At", "Sender", "Content"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)

	count := 0
	prefix := []byte(fmt.Sprintf("msg:%s:%s:", scope, target))
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := it.Item().Value(func(val []byte) error {
				var msg storedMessage
				if err := json.Unmarshal(val, &msg); err != nil {
					return err
				}
				sender := msg.SenderName
				if cfg.Colours {
					sender = color.New(color.FgCyan).Render(sender)
				}
				table.Append([]string{
					fmt.Sprintf("%d", msg.ID),
					msg.CreatedAt.Local().Format(time.RFC822),
					sender,
					msg.Content,
				})
				count++
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Scan failed: %v", err)
	}

	header := fmt.Sprintf("Room %s:%s (%d messages)", scope, target, count)
	if cfg.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	fmt.Println(header)
	table.Render()
}
