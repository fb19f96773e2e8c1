package storage

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atinyakov/BookmarkKeeper/internal/models"
)

// PromptForBookmark reads the fields of a new bookmark from stdin. Title,
// notes and image path may be left empty.
func PromptForBookmark() (url, title, notes, imagePath string) {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print("Enter URL: ")
	scanner.Scan()
	url = strings.TrimSpace(scanner.Text())

	fmt.Print("Enter title (optional): ")
	scanner.Scan()
	title = scanner.Text()

	fmt.Print("Enter notes (optional): ")
	scanner.Scan()
	notes = scanner.Text()

	fmt.Print("Enter image file path (optional): ")
	scanner.Scan()
	imagePath = strings.TrimSpace(scanner.Text())

	return url, title, notes, imagePath
}

// PromptEditBookmark reads the fields to change on an existing bookmark.
// Empty input keeps the stored value; archive state has its own command.
func PromptEditBookmark() (up models.BookmarkUpdate, imagePath string) {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print("New URL (empty to keep): ")
	scanner.Scan()
	if v := strings.TrimSpace(scanner.Text()); v != "" {
		up.URL = &v
	}

	fmt.Print("New title (empty to keep): ")
	scanner.Scan()
	if v := scanner.Text(); v != "" {
		up.Title = &v
	}

	fmt.Print("New notes (empty to keep): ")
	scanner.Scan()
	if v := scanner.Text(); v != "" {
		up.Notes = &v
	}

	fmt.Print("New sort order (empty to keep): ")
	scanner.Scan()
	if v := strings.TrimSpace(scanner.Text()); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			up.SortOrder = &n
		} else {
			fmt.Println("Not a number, keeping stored sort order")
		}
	}

	fmt.Print("New image file path (empty to keep current image): ")
	scanner.Scan()
	imagePath = strings.TrimSpace(scanner.Text())

	return up, imagePath
}
