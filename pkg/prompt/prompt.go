// Package prompt asks for missing command input on a terminal.
package prompt

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/annals/pkg/event"
)

// Prompter reads answers from In and draws on Out.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

// RegionItem is one selectable column name.
type RegionItem struct {
	Name   string
	Parent string
	ID     string
}

// Items flattens regions the way columns are laid out.
func Items(regions []event.Region) []RegionItem {
	items := make([]RegionItem, 0, len(regions))
	for _, r := range regions {
		items = append(items, RegionItem{Name: r.Name, ID: r.ID})
		for _, s := range r.Subregions {
			items = append(items, RegionItem{Name: s.Name, Parent: r.Name, ID: s.ID})
		}
	}
	return items
}

func searcher(items []RegionItem) func(string, int) bool {
	return func(input string, index int) bool {
		it := items[index]
		name := strings.Replace(strings.ToLower(it.Name+it.Parent), " ", "", -1)
		input = strings.Replace(strings.ToLower(input), " ", "", -1)
		return strings.Contains(name, input)
	}
}

// Region asks the user to pick a region or subregion name.
func (p Prompter) Region(regions []event.Region) (string, error) {
	items := Items(regions)
	if len(items) == 0 {
		return "", errors.New("prompt: no regions to choose from")
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Name | bold }}{{ if .Parent }} {{ .Parent | faint }}{{ end }}",
		Inactive: "   {{ .Name }}{{ if .Parent }} {{ .Parent | faint }}{{ end }}",
		Selected: "{{ .Name | bold }}",
	}

	sel := promptui.Select{
		HideHelp:  true,
		Label:     "Region",
		Items:     items,
		Templates: templates,
		Size:      10,
		Searcher:  searcher(items),
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	i, _, err := sel.Run()
	if err != nil {
		return "", err
	}
	return items[i].Name, nil
}

// ValidateYear accepts signed integer years.
func ValidateYear(input string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(input)); err != nil {
		return errors.New("enter a whole year, negative for B.C.")
	}
	return nil
}

// Year asks for a year.
func (p Prompter) Year(label string) (int, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }}: ",
		Valid:   "{{ . | green }}: ",
		Invalid: "{{ . | red }}: ",
		Success: "{{ . | bold }}: ",
	}
	pr := promptui.Prompt{
		Label:     label,
		Templates: templates,
		Validate:  ValidateYear,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	result, err := pr.Run()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(result))
}

// Confirm asks a yes/no question; anything but y is no.
func (p Prompter) Confirm(label string) (bool, error) {
	pr := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	if _, err := pr.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// stdin and stdout return nil when unset so promptui falls back to the
// process streams.
func (p Prompter) stdin() io.ReadCloser {
	if p.In == nil {
		return nil
	}
	return io.NopCloser(p.In)
}

func (p Prompter) stdout() io.WriteCloser {
	if p.Out == nil {
		return nil
	}
	return nopCloser{p.Out}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
