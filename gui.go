//go:build gui

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/metcalfc/prr/internal/config"
	"github.com/metcalfc/prr/internal/reader"
	"github.com/spf13/cobra"
)

// viewer owns the three page panels. Only one of cover, info and content is
// visible at a time.
type viewer struct {
	book *book

	status  *widget.Label
	loading *widget.Label

	coverPanel *fyne.Container
	coverImage *canvas.Image
	coverTitle *widget.Label

	info *widget.RichText

	contentText  *widget.Label
	contentPanel *container.Scroll

	prevButton *widget.Button
	nextButton *widget.Button

	root fyne.CanvasObject
}

func newViewer(source string) *viewer {
	v := &viewer{}

	v.status = widget.NewLabel("")
	v.status.Alignment = fyne.TextAlignCenter
	v.loading = widget.NewLabel("Loading " + source + "...")
	v.loading.Alignment = fyne.TextAlignCenter

	v.coverImage = &canvas.Image{FillMode: canvas.ImageFillContain}
	v.coverTitle = widget.NewLabel("")
	v.coverTitle.Alignment = fyne.TextAlignCenter
	v.coverTitle.TextStyle.Bold = true
	v.coverPanel = container.NewStack(v.coverImage, container.NewCenter(v.coverTitle))

	v.info = widget.NewRichText()
	v.info.Wrapping = fyne.TextWrapWord

	v.contentText = widget.NewLabel("")
	v.contentText.Wrapping = fyne.TextWrapWord
	v.contentPanel = container.NewVScroll(v.contentText)

	v.prevButton = widget.NewButton("Previous", v.prev)
	v.nextButton = widget.NewButton("Next", v.next)
	v.prevButton.Disable()
	v.nextButton.Disable()

	v.coverPanel.Hide()
	v.info.Hide()
	v.contentPanel.Hide()

	v.root = container.NewBorder(
		v.status,
		container.NewGridWithColumns(2, v.prevButton, v.nextButton),
		nil, nil,
		container.NewStack(v.loading, v.coverPanel, container.NewPadded(v.info), v.contentPanel),
	)
	return v
}

func (v *viewer) setBook(b *book) {
	v.book = b
	v.loading.Hide()

	v.coverTitle.SetText(b.Book.Title)
	if img, err := reader.CoverThumbnail(b.Book.Cover, 600, 900); err == nil {
		v.coverImage.Image = img
		v.coverImage.Refresh()
		v.coverTitle.Hide()
	} else {
		v.coverImage.Hide()
	}
	v.show()
}

func (v *viewer) next() {
	if v.book != nil && v.book.Next() {
		v.show()
	}
}

func (v *viewer) prev() {
	if v.book != nil && v.book.Prev() {
		v.show()
	}
}

func (v *viewer) show() {
	if v.book == nil {
		return
	}
	view := v.book.View()
	setVisible(v.coverPanel, view == reader.ViewCover)
	setVisible(v.info, view == reader.ViewInfo)
	setVisible(v.contentPanel, view == reader.ViewContent)

	switch view {
	case reader.ViewInfo:
		v.info.Segments = richSegments(v.book.Text())
		v.info.Refresh()
	case reader.ViewContent:
		v.contentText.SetText(strings.TrimRight(v.book.Text(), "\n"))
		v.contentPanel.ScrollToTop()
	}

	current, total := v.book.Progress()
	status := fmt.Sprintf("Page %d/%d", current, total)
	if title := v.book.CurrentChapterTitle(); title != "" {
		status += " | " + title
	}
	v.status.SetText(status)

	setEnabled(v.prevButton, v.book.Index() > 0)
	setEnabled(v.nextButton, !v.book.AtEnd())
}

func (v *viewer) save() {
	if err := v.book.savePosition(); err != nil {
		log.Printf("failed to save reading position: %v", err)
	}
}

func setVisible(o fyne.CanvasObject, visible bool) {
	if visible {
		o.Show()
	} else {
		o.Hide()
	}
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

// richSegments turns info page markup into rich text, one paragraph per line.
func richSegments(text string) []widget.RichTextSegment {
	var segs []widget.RichTextSegment
	for _, line := range strings.Split(text, "\n") {
		parts := reader.ParseMarkup(line)
		if len(parts) == 0 {
			segs = append(segs, &widget.TextSegment{Style: widget.RichTextStyleParagraph})
			continue
		}
		for i, p := range parts {
			style := widget.RichTextStyleInline
			if p.Bold {
				style = widget.RichTextStyleStrong
			}
			style.Inline = i < len(parts)-1
			segs = append(segs, &widget.TextSegment{Style: style, Text: p.Text})
		}
	}
	return segs
}

func runGUI(cmd *cobra.Command, cfg config.Config, source string, fresh bool) error {
	logger := log.New(os.Stderr, "prr: ", log.LstdFlags)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	a := app.New()
	w := a.NewWindow("prr - " + source)
	v := newViewer(source)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	go func() {
		b, err := openBook(ctx, cfg, source, fresh, logger)
		if err != nil {
			logger.Printf("load aborted: %v", err)
			return
		}
		fyne.Do(func() {
			v.setBook(b)
			w.SetTitle("prr - " + b.Book.Title)
		})
	}()

	w.Canvas().SetOnTypedKey(func(k *fyne.KeyEvent) {
		switch k.Name {
		case fyne.KeyRight, fyne.KeyPageDown, fyne.KeySpace:
			v.next()
		case fyne.KeyLeft, fyne.KeyPageUp:
			v.prev()
		case fyne.KeyQ, fyne.KeyEscape:
			w.Close()
		}
	})

	w.SetOnClosed(func() {
		v.save()
		cancel()
	})

	w.Resize(fyne.NewSize(800, 600))
	w.SetContent(v.root)
	w.ShowAndRun()
	return nil
}

func main() {
	cmd := newRootCmd("Page through EPUB books in a window", runGUI)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
