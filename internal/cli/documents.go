package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"docvault/internal/form"
	"docvault/internal/listing"
	"docvault/internal/service"
)

func (a *App) list(ctx context.Context, args []string) error {
	fs := newFlagSet("list", a.out)
	term := fs.String("q", "", "search title or file name")
	category := fs.String("category", "", "exact category")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	res, err := a.client.List(ctx, *term, *category)
	if err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}
	if len(res.Data) == 0 {
		fmt.Fprintln(a.out, "No documents found")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tDATE\tSIZE\tUPLOADED BY")
	for _, d := range res.Data {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", d.ID, d.Title, d.Category, d.UploadDate, d.FileSize, d.UploadedBy)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := listing.Summarize(res.Data, a.now())
	fmt.Fprintf(a.out, "\n%d documents, %d categories, %d uploaded this week\n", s.TotalDocuments, s.Categories, s.RecentUploads)
	return nil
}

func (a *App) upload(ctx context.Context, args []string) error {
	fs := newFlagSet("upload", a.out)
	title := fs.String("title", "", "document title")
	category := fs.String("category", "", "one of: Finance, HR, Legal, Marketing, Operations, IT, Other")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	var (
		header *form.FileHeader
		f      *os.File
	)
	if fs.NArg() > 0 {
		var err error
		f, err = os.Open(fs.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", fs.Arg(0))
		}
		header = &form.FileHeader{Name: filepath.Base(fs.Arg(0)), Size: info.Size()}
	}

	if errs := form.ValidateUpload(*title, *category, header); !errs.Valid() {
		for _, field := range []string{form.FieldTitle, form.FieldCategory, form.FieldFile} {
			if msg, ok := errs[field]; ok {
				fmt.Fprintf(a.out, "%s: %s\n", field, msg)
			}
		}
		return errInvalidForm
	}
	if !form.IsCategory(*category) {
		fmt.Fprintf(a.out, "note: %q is not one of the suggested categories\n", *category)
	}

	fmt.Fprintf(a.out, "Uploading %s (%s)...\n", header.Name, form.FormatBytes(header.Size))
	doc, err := a.client.Upload(ctx, *title, *category, header.Name, f)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	fmt.Fprintf(a.out, "Document uploaded successfully: %s\n", doc.ID)
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if err := a.requireSession(); err != nil {
		return err
	}
	if err := a.client.Delete(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	fmt.Fprintln(a.out, "Document deleted")
	return nil
}

func (a *App) download(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if err := a.requireSession(); err != nil {
		return err
	}
	rec, err := a.client.Download(ctx, args[0])
	if errors.Is(err, service.ErrNotFound) {
		return fmt.Errorf("document %s not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to download document: %w", err)
	}

	fmt.Fprintf(a.out, "Download %s for %s\n", rec.Status, rec.FileName)
	if rec.URL != "" {
		fmt.Fprintf(a.out, "%s\n(valid until %s)\n", rec.URL, rec.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func (a *App) categories(_ context.Context, _ []string) error {
	for _, c := range form.Categories {
		fmt.Fprintln(a.out, c)
	}
	return nil
}
