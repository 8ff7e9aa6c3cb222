package cli

import (
	"fmt"
	"time"

	"resumecrafter/internal/common"
	"resumecrafter/internal/document"
	"resumecrafter/internal/render"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [resume-file]",
	Short: "Render a resume or cover letter to PDF or DOCX",
	Long: `Render a structured resume into a finished document. The command takes
one argument: the path to the resume file (structured JSON).

By default the resume itself is rendered. Pass --letter-body with a file
containing a generated cover letter body to render a cover letter instead;
the salutation, date, and closing are added automatically.

Use --doc-format to pick the physical format and --variant to choose
between the fully styled layout and the plain ATS-safe layout. Both
variants carry identical content and ordering.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := common.ValidateDocumentFormat(renderDocFormat); err != nil {
			return err
		}
		return common.ValidateStyleVariant(renderVariant)
	},
	RunE: runRender,
}

var (
	renderOutputFile string
	renderDocFormat  string
	renderVariant    string
	renderLetterBody string
	renderCompany    string
)

func init() {
	renderCmd.Flags().StringVarP(&renderOutputFile, "output", "o", "", "Output file path (required)")
	renderCmd.Flags().StringVar(&renderDocFormat, "doc-format", "pdf", "Document format: pdf or docx")
	renderCmd.Flags().StringVar(&renderVariant, "variant", "full", "Style variant: full or plain")
	renderCmd.Flags().StringVar(&renderLetterBody, "letter-body", "", "Cover letter body file; renders a cover letter instead of the resume")
	renderCmd.Flags().StringVar(&renderCompany, "company", "", "Company name for the cover letter header")
	_ = renderCmd.MarkFlagRequired("output")

	_ = renderCmd.RegisterFlagCompletionFunc("doc-format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"pdf", "docx"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = renderCmd.RegisterFlagCompletionFunc("variant", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"full", "plain"}, cobra.ShellCompDirectiveNoFileComp
	})
}

func runRender(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)

	rec, err := fileProcessor.ReadResume(args[0])
	if err != nil {
		return err
	}

	variant := document.VariantFull
	if renderVariant == "plain" {
		variant = document.VariantPlain
	}

	var blocks []render.Block
	if renderLetterBody != "" {
		body, err := fileProcessor.ReadFile(renderLetterBody)
		if err != nil {
			return err
		}
		blocks = document.BuildCoverLetter(rec, body, renderCompany, time.Now())
	} else {
		blocks = document.BuildResume(rec)
	}

	logger.Info("Rendering document",
		"resume", args[0],
		"doc_format", renderDocFormat,
		"variant", renderVariant,
		"output", renderOutputFile)

	var data []byte
	if renderDocFormat == "docx" {
		data, err = document.RenderDOCX(blocks, document.Styles(variant))
	} else {
		data, err = document.RenderPDF(blocks, document.Styles(variant))
	}
	if err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}

	if err := fileProcessor.WriteBinaryFile(renderOutputFile, data); err != nil {
		return err
	}

	logger.Info("Document rendered successfully",
		"output", renderOutputFile,
		"size_bytes", len(data))
	return nil
}
