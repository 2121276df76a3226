package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hubdeck/hubdeck-cli/internal/core/domain"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Manage contact attachments",
}

var filesUploadCmd = &cobra.Command{
	Use:   "upload [contact-id] [path]",
	Short: "Attach a file to a contact",
	Long: `Uploads a file and attaches it to the contact. Allowed types:
pdf, doc, docx, xls, xlsx, jpg, jpeg, png, gif. Maximum size 10 MB.`,
	Args: cobra.ExactArgs(2),
	RunE: runFilesUpload,
}

var filesListCmd = &cobra.Command{
	Use:   "list [contact-id]",
	Short: "List a contact's attachments",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilesList,
}

func init() {
	filesCmd.AddCommand(filesUploadCmd)
	filesCmd.AddCommand(filesListCmd)
	rootCmd.AddCommand(filesCmd)
}

func runFilesUpload(cmd *cobra.Command, args []string) error {
	if err := ensureConnected(cmd); err != nil {
		return err
	}

	contactID, path := args[0], args[1]

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	name := filepath.Base(path)
	lastShown := -1
	onProgress := func(pct int) {
		// Redraw only on change to keep output readable.
		if pct != lastShown {
			fmt.Fprintf(cmd.OutOrStdout(), "\rUploading %s... %d%%", name, pct)
			lastShown = pct
		}
	}

	att, err := contactService.UploadFile(cmd.Context(), contactID, name, f, info.Size(), onProgress)
	if lastShown >= 0 {
		cmd.Println()
	}
	if err != nil {
		return err
	}

	cmd.Printf("Uploaded %s (%s)\n", att.Name, domain.FormatFileSize(att.Size))
	return nil
}

func runFilesList(cmd *cobra.Command, args []string) error {
	if err := ensureConnected(cmd); err != nil {
		return err
	}

	files, err := contactService.ListFiles(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if len(files) == 0 {
		cmd.Println("No attachments.")
		return nil
	}

	for i := range files {
		cmd.Printf("  %-14s %-30s %s\n", files[i].ID, files[i].Name, domain.FormatFileSize(files[i].Size))
	}
	return nil
}
