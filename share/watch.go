package share

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/yaoapp/kun/log"
)

var watchOp = map[fsnotify.Op]string{
	fsnotify.Create: "create",
	fsnotify.Write:  "write",
	fsnotify.Remove: "remove",
	fsnotify.Rename: "rename",
	fsnotify.Chmod:  "chmod",
}

// Watch calls cb whenever one of files is created or written, until ctx is done.
// The parent directories are watched so editors that replace files on save are followed.
func Watch(ctx context.Context, files []string, cb func(op string, file string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watched := map[string]bool{}
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return err
		}
		watched[abs] = true

		dir := filepath.Dir(abs)
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		fmt.Println(color.GreenString("Watching: %s", abs))
	}

	for {
		select {
		case <-ctx.Done():
			fmt.Println(color.GreenString("Stop Watching"))
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[event.Name] {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			cb(opName(event.Op), event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("[Watch] %s", err.Error())
		}
	}
}

func opName(op fsnotify.Op) string {
	if name, has := watchOp[op]; has {
		return name
	}
	if op.Has(fsnotify.Create) {
		return watchOp[fsnotify.Create]
	}
	return watchOp[fsnotify.Write]
}
