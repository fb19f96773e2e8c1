// Package main implements the interactive BookmarkKeeper client shell.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/atinyakov/BookmarkKeeper/internal/client/api"
	"github.com/atinyakov/BookmarkKeeper/internal/client/storage"
)

var (
	version   string
	buildDate string
)

// parseListArgs maps the optional "list" arguments onto a sort key and
// direction. Defaults: title ascending.
func parseListArgs(args []string) (storage.SortKey, bool) {
	key := storage.SortByTitle
	ascending := true
	if len(args) > 0 {
		switch args[0] {
		case "title", "date_added", "date_modified":
			key = storage.SortKey(args[0])
		default:
			fmt.Println("Unknown sort key, using title (title | date_added | date_modified)")
		}
	}
	if len(args) > 1 && args[1] == "desc" {
		ascending = false
	}
	return key, ascending
}

func printBookmarks(state *storage.LocalState, key storage.SortKey, ascending bool) {
	bookmarks := storage.SortBookmarks(state.Bookmarks(), key, ascending)
	if len(bookmarks) == 0 {
		fmt.Println("No bookmarks")
		return
	}
	for _, b := range bookmarks {
		cover := " "
		if state.CoverImage(b.ID) != nil {
			cover = "*"
		}
		fmt.Printf("%4d %s %-40s %s (added %s, modified %s, images %d)\n",
			b.ID, cover, storage.DisplayTitle(b), b.URL,
			storage.FormatDate(&b.CreatedAt), storage.FormatDate(b.UpdatedAt), b.ImagesCount)
	}
}

func parseID(arg string) (int64, bool) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Println("Not a numeric id:", arg)
		return 0, false
	}
	return id, true
}

// repl runs the interactive shell loop, accepting commands to manage
// bookmarks and their images.
func repl(client *api.Client, state *storage.LocalState) {
	if err := state.Refresh(); err != nil {
		fmt.Println("Initial load failed:", err)
	}

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("bookmarkkeeper> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, refresh, list [key] [asc|desc], get <id>, add, edit <id>, archive <id>, delete <id>, images <id>, attach <id> <file>, delimg <id>, exit")
		case "refresh":
			if err := state.Refresh(); err != nil {
				fmt.Println("Refresh failed:", err)
			}
		case "list":
			key, ascending := parseListArgs(args[1:])
			printBookmarks(state, key, ascending)
		case "get":
			if len(args) < 2 {
				fmt.Println("Usage: get <id>")
				continue
			}
			id, ok := parseID(args[1])
			if !ok {
				continue
			}
			b, err := client.GetBookmark(id)
			if err != nil {
				fmt.Println(err)
				continue
			}
			out, _ := json.MarshalIndent(b, "", "  ")
			fmt.Println(string(out))
		case "add":
			url, title, notes, imagePath := storage.PromptForBookmark()
			created, err := state.AddBookmark(url, title, notes, imagePath)
			switch {
			case errors.Is(err, storage.ErrPartialSave):
				fmt.Printf("Bookmark %d saved, but the image was not: %v\n", created.ID, err)
			case err != nil:
				fmt.Println(err)
				continue
			default:
				fmt.Printf("Bookmark %d saved\n", created.ID)
			}
			if err := state.Refresh(); err != nil {
				fmt.Println("Refresh failed:", err)
			}
		case "edit":
			if len(args) < 2 {
				fmt.Println("Usage: edit <id>")
				continue
			}
			id, ok := parseID(args[1])
			if !ok {
				continue
			}
			up, imagePath := storage.PromptEditBookmark()
			_, err := state.SaveBookmark(id, up, imagePath)
			switch {
			case errors.Is(err, storage.ErrPartialSave):
				fmt.Printf("Bookmark %d updated, but the image was not replaced: %v\n", id, err)
			case err != nil:
				fmt.Println(err)
				continue
			default:
				fmt.Printf("Bookmark %d updated\n", id)
			}
			if err := state.Refresh(); err != nil {
				fmt.Println("Refresh failed:", err)
			}
		case "archive":
			if len(args) < 2 {
				fmt.Println("Usage: archive <id>")
				continue
			}
			id, ok := parseID(args[1])
			if !ok {
				continue
			}
			b, err := state.ToggleArchive(id)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if b.IsArchived {
				fmt.Printf("Bookmark %d archived\n", b.ID)
			} else {
				fmt.Printf("Bookmark %d unarchived\n", b.ID)
			}
			if err := state.Refresh(); err != nil {
				fmt.Println("Refresh failed:", err)
			}
		case "delete":
			if len(args) < 2 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			id, ok := parseID(args[1])
			if !ok {
				continue
			}
			if err := state.DeleteBookmark(id); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Printf("Bookmark %d deleted\n", id)
		case "images":
			if len(args) < 2 {
				fmt.Println("Usage: images <id>")
				continue
			}
			id, ok := parseID(args[1])
			if !ok {
				continue
			}
			images, err := client.GetImages(id)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if len(images) == 0 {
				fmt.Println("No images")
				continue
			}
			for i, img := range images {
				marker := ""
				if i == 0 {
					marker = " (cover)"
				}
				fmt.Printf("%4d %s %d bytes%s\n", img.ID, img.ContentType, valueOrZero(img.SizeBytes), marker)
			}
		case "attach":
			if len(args) < 3 {
				fmt.Println("Usage: attach <id> <file>")
				continue
			}
			id, ok := parseID(args[1])
			if !ok {
				continue
			}
			img, err := state.AttachImage(id, args[2])
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Printf("Image %d attached to bookmark %d\n", img.ID, id)
		case "delimg":
			if len(args) < 2 {
				fmt.Println("Usage: delimg <id>")
				continue
			}
			id, ok := parseID(args[1])
			if !ok {
				continue
			}
			if err := state.DeleteImage(id); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Printf("Image %d deleted\n", id)
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func valueOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

// main parses command-line flags and starts the shell.
func main() {
	var (
		baseURL string
		showVer bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:3001", "server base URL")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("BookmarkKeeper Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	client := api.New(baseURL, http.DefaultClient)
	if err := client.Health(); err != nil {
		fmt.Println("Warning:", err)
	}

	state := storage.NewLocalState(client, client, client, nil)
	repl(client, state)
}
