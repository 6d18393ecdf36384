package main

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchFiles blocks, re-invoking regen for an input file whenever it is
// written. Watches are placed on the containing directories so that
// editors that replace files (write to temp, rename over) are still seen.
func watchFiles(files []string, regen func(string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	watched := make(map[string]string, len(files)) // absolute path -> original argument
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		watched[abs] = f
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return err
		}
	}

	log.Printf("watching %d file(s)", len(files))
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if orig, ok := watched[abs]; ok {
				log.Printf("%s changed", orig)
				regen(orig)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}
