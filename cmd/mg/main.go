package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kraitsura/mindgrove/pkg/config"
	"github.com/kraitsura/mindgrove/pkg/model"
	"github.com/kraitsura/mindgrove/pkg/store"
	"github.com/kraitsura/mindgrove/pkg/ui"
)

const version = "0.1.0"

func main() {
	file := flag.String("file", "mindmap.json", "Mind map document to open (created if missing)")
	configPath := flag.String("config", config.DefaultPath(), "Config file path")
	help := flag.Bool("help", false, "Show help")
	showVersion := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *help {
		fmt.Println("Usage: mg [options]")
		fmt.Println("\nA TUI mind map editor.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *showVersion {
		fmt.Println("mg version " + version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	docPath, err := filepath.Abs(*file)
	if err != nil {
		fmt.Printf("Error resolving %s: %v\n", *file, err)
		os.Exit(1)
	}
	doc, err := openOrCreate(docPath)
	if err != nil {
		fmt.Printf("Error opening document: %v\n", err)
		os.Exit(1)
	}

	// View state and recents live in a small database next to the
	// config. The editor still works when it cannot be opened.
	var db *store.DB
	if dir, err := os.UserConfigDir(); err == nil {
		if d, err := store.OpenDB(filepath.Join(dir, "mindgrove", "state.db")); err == nil {
			db = d
			defer db.Close()
			db.TouchRecent(docPath, doc.Title)
		}
	}

	m := ui.NewModel(doc, docPath, db, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	watcher, err := store.WatchDocument(docPath, func() {
		p.Send(ui.ExternalChangeMsg{})
	})
	if err == nil {
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running mindgrove: %v\n", err)
		os.Exit(1)
	}
}

// openOrCreate loads the document, seeding a fresh one when the file
// does not exist yet.
func openOrCreate(path string) (*model.Document, error) {
	doc, err := store.LoadDocument(path)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	doc = &model.Document{Title: title, Root: model.NewRoot(title)}
	if err := store.SaveDocument(doc, path); err != nil {
		return nil, err
	}
	return doc, nil
}
