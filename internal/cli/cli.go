// Package cli provides the command line interface.
package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dirscribe/dirscribe/internal/config"
	"github.com/dirscribe/dirscribe/internal/extract"
	"github.com/dirscribe/dirscribe/internal/report"
	"github.com/dirscribe/dirscribe/internal/scan"
	"github.com/dirscribe/dirscribe/internal/services/clipboard"
	"github.com/dirscribe/dirscribe/internal/tokenizer"
	"github.com/dirscribe/dirscribe/internal/types"
	"github.com/dirscribe/dirscribe/internal/utils"
)

const (
	exclusionFlagName = "e"
	outputFlagName    = "output"
	configFlagName    = "config"
	maxCharsFlagName  = "max-chars"
	maxLinesFlagName  = "max-lines"
	tokensFlagName    = "tokens"
	modelFlagName     = "model"
	copyFlagName      = "copy"
	quietFlagName     = "quiet"
	versionFlagName   = "version"
	versionTemplate   = "dirscribe version: %s\n"

	rootUse              = "dirscribe"
	rootShortDescription = "dirscribe command line interface"
	rootLongDescription  = `dirscribe walks a directory tree and writes a folder content report:
the rendered directory structure followed by per-file details including
extracted titles and bounded content previews.`

	scanUse              = "scan [path]"
	scanAlias            = "s"
	scanShortDescription = "scan a folder and write its content report (" + scanAlias + ")"
	scanLongDescription  = `Scan the folder at path (or the configured default path) and write the
folder content report. Folders named in the exclusion set are pruned from
both the rendered tree and the file listing.`
	scanUsageExample = `  # Scan the current directory
  dirscribe scan .

  # Exclude additional folder names and choose the report location
  dirscribe scan -e dist -e .cache --output /tmp/report.txt ~/projects/demo

  # Include token estimates and copy the report to the clipboard
  dirscribe scan --tokens --copy ./docs`

	exclusionFlagDescription = "folder name to exclude (repeatable, appended to the configured set)"
	outputFlagDescription    = "report file path"
	configFlagDescription    = "configuration file path"
	maxCharsFlagDescription  = "content preview character cap"
	maxLinesFlagDescription  = "content preview line cap"
	tokensFlagDescription    = "include token estimates for previews"
	modelFlagDescription     = "tokenizer model used for token estimates"
	copyFlagDescription      = "copy the finished report to the clipboard"
	quietFlagDescription     = "suppress progress output"
	versionFlagDescription   = "display application version"

	defaultTokenizerModelName = "gpt-4o"

	errorMissingRootMessage     = "no folder path provided and no default path configured"
	errorResolveRootFormat      = "resolving folder path %s: %w"
	errorCreateReportFormat     = "creating report file %s: %w"
	errorCloseReportFormat      = "closing report file %s: %w"
	warningClipboardMessage     = "failed to copy report to clipboard"
	warningTokenizerInitMessage = "token estimation disabled"
	warningDocxUnavailable      = "DOCX parsing unavailable; .docx files will be annotated, not parsed"
)

// scanOptions stores flag values for the scan command.
type scanOptions struct {
	exclusionNames  []string
	outputPath      string
	configPath      string
	maxPreviewChars int
	maxPreviewLines int
	tokensEnabled   bool
	tokenizerModel  string
	copyToClipboard bool
	quiet           bool
}

// Execute runs the dirscribe application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(createScanCommand())
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createScanCommand returns the scan subcommand.
func createScanCommand() *cobra.Command {
	var options scanOptions

	scanCommand := &cobra.Command{
		Use:     scanUse,
		Aliases: []string{scanAlias},
		Short:   scanShortDescription,
		Long:    scanLongDescription,
		Example: scanUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			return runScan(arguments, options)
		},
	}

	scanCommand.Flags().StringArrayVarP(&options.exclusionNames, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	scanCommand.Flags().StringVarP(&options.outputPath, outputFlagName, "o", "", outputFlagDescription)
	scanCommand.Flags().StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	scanCommand.Flags().IntVar(&options.maxPreviewChars, maxCharsFlagName, 0, maxCharsFlagDescription)
	scanCommand.Flags().IntVar(&options.maxPreviewLines, maxLinesFlagName, 0, maxLinesFlagDescription)
	scanCommand.Flags().BoolVar(&options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	scanCommand.Flags().StringVar(&options.tokenizerModel, modelFlagName, "", modelFlagDescription)
	scanCommand.Flags().BoolVar(&options.copyToClipboard, copyFlagName, false, copyFlagDescription)
	scanCommand.Flags().BoolVar(&options.quiet, quietFlagName, false, quietFlagDescription)
	return scanCommand
}

// runScan executes a full scan: configuration, collection, and report.
func runScan(arguments []string, options scanOptions) error {
	applicationLogger, loggerError := utils.NewApplicationLogger()
	if loggerError != nil {
		return fmt.Errorf("initialize logger: %w", loggerError)
	}
	defer func() {
		_ = applicationLogger.Sync()
	}()

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: options.configPath,
	})
	if configurationError != nil {
		return configurationError
	}
	scanConfiguration := applicationConfiguration.Scan

	rootPath, rootError := resolveRootPath(arguments, scanConfiguration)
	if rootError != nil {
		return rootError
	}
	if validationError := scan.ValidateRoot(rootPath); validationError != nil {
		return validationError
	}

	exclusionSet := buildExclusionSet(scanConfiguration, options)
	previewLimits := resolvePreviewLimits(scanConfiguration, options)

	var documentParser extract.DocumentParser = extract.NewWordDocumentParser()
	extractor := extract.NewExtractor(previewLimits, documentParser)
	if !extractor.DocumentParserAvailable() {
		applicationLogger.Warn(warningDocxUnavailable)
	}

	tokenCounter := resolveTokenCounter(scanConfiguration, options, applicationLogger)

	applicationLogger.Info("starting scan",
		zap.String("folder", rootPath),
		zap.Strings("excluding", exclusionSet.Names()),
	)

	collectedFiles, collectError := scan.CollectFiles(rootPath, exclusionSet)
	if collectError != nil {
		return collectError
	}

	outputPath, outputPathError := resolveOutputPath(scanConfiguration, options)
	if outputPathError != nil {
		return outputPathError
	}

	progress := newProgressPrinter(os.Stdout, options.quiet)
	assembler := report.Assembler{
		Extractor:    extractor,
		TokenCounter: tokenCounter,
		Progress:     progress.Print,
	}

	copyRequested := options.copyToClipboard
	if !copyRequested && scanConfiguration.Clipboard != nil {
		copyRequested = *scanConfiguration.Clipboard
	}

	reportText, writeError := writeReport(assembler, rootPath, exclusionSet, collectedFiles, outputPath, copyRequested)
	if writeError != nil {
		return writeError
	}

	if copyRequested {
		if clipboardError := clipboard.NewService().Copy(reportText); clipboardError != nil {
			applicationLogger.Warn(warningClipboardMessage, zap.Error(clipboardError))
		}
	}

	if len(collectedFiles) == 0 {
		applicationLogger.Info("no files found after exclusions; empty report written",
			zap.String("output", outputPath),
		)
		return nil
	}

	applicationLogger.Info("scan complete",
		zap.Int("files", len(collectedFiles)),
		zap.String("output", outputPath),
	)
	return nil
}

// writeReport writes the report to outputPath, additionally capturing the
// report text when it must be copied to the clipboard afterwards.
func writeReport(assembler report.Assembler, rootPath string, exclusions types.ExclusionSet, collectedFiles []string, outputPath string, captureText bool) (string, error) {
	reportFile, createError := os.Create(outputPath)
	if createError != nil {
		return "", fmt.Errorf(errorCreateReportFormat, outputPath, createError)
	}

	var captureBuffer bytes.Buffer
	var destination io.Writer = reportFile
	if captureText {
		destination = io.MultiWriter(reportFile, &captureBuffer)
	}

	var assembleError error
	if len(collectedFiles) == 0 {
		assembleError = assembler.WriteEmpty(destination, rootPath)
	} else {
		assembleError = assembler.Write(destination, rootPath, exclusions, collectedFiles)
	}
	if assembleError != nil {
		_ = reportFile.Close()
		return "", assembleError
	}

	if closeError := reportFile.Close(); closeError != nil {
		return "", fmt.Errorf(errorCloseReportFormat, outputPath, closeError)
	}
	return captureBuffer.String(), nil
}

// resolveRootPath determines the scan root from the argument or the
// configured default path, resolved to an absolute path.
func resolveRootPath(arguments []string, scanConfiguration config.ScanConfiguration) (string, error) {
	rootArgument := ""
	if len(arguments) > 0 {
		rootArgument = arguments[0]
	}
	if rootArgument == "" {
		rootArgument = scanConfiguration.DefaultPath
	}
	if rootArgument == "" {
		return "", fmt.Errorf(errorMissingRootMessage)
	}
	absoluteRoot, absoluteError := filepath.Abs(rootArgument)
	if absoluteError != nil {
		return "", fmt.Errorf(errorResolveRootFormat, rootArgument, absoluteError)
	}
	return absoluteRoot, nil
}

// buildExclusionSet combines the configured exclusions (or the built-in
// defaults) with any names supplied through flags.
func buildExclusionSet(scanConfiguration config.ScanConfiguration, options scanOptions) types.ExclusionSet {
	baseExclusions := scanConfiguration.Exclude
	if len(baseExclusions) == 0 {
		baseExclusions = config.DefaultExclusions()
	}
	combined := append(append([]string{}, baseExclusions...), options.exclusionNames...)
	return types.NewExclusionSet(utils.DeduplicateNames(combined)...)
}

// resolvePreviewLimits layers flag values over configuration over defaults.
func resolvePreviewLimits(scanConfiguration config.ScanConfiguration, options scanOptions) types.PreviewLimits {
	previewLimits := types.DefaultPreviewLimits()
	if scanConfiguration.MaxPreviewChars != nil && *scanConfiguration.MaxPreviewChars > 0 {
		previewLimits.MaxChars = *scanConfiguration.MaxPreviewChars
	}
	if scanConfiguration.MaxPreviewLines != nil && *scanConfiguration.MaxPreviewLines > 0 {
		previewLimits.MaxLines = *scanConfiguration.MaxPreviewLines
	}
	if options.maxPreviewChars > 0 {
		previewLimits.MaxChars = options.maxPreviewChars
	}
	if options.maxPreviewLines > 0 {
		previewLimits.MaxLines = options.maxPreviewLines
	}
	return previewLimits
}

// resolveTokenCounter returns a token counter when estimation is enabled,
// or nil after logging a warning when initialization fails.
func resolveTokenCounter(scanConfiguration config.ScanConfiguration, options scanOptions, applicationLogger *zap.Logger) tokenizer.Counter {
	tokensEnabled := options.tokensEnabled
	if !tokensEnabled && scanConfiguration.Tokens.Enabled != nil {
		tokensEnabled = *scanConfiguration.Tokens.Enabled
	}
	if !tokensEnabled {
		return nil
	}

	modelName := strings.TrimSpace(options.tokenizerModel)
	if modelName == "" {
		modelName = scanConfiguration.Tokens.Model
	}
	if modelName == "" {
		modelName = defaultTokenizerModelName
	}

	tokenCounter, counterError := tokenizer.NewCounter(modelName)
	if counterError != nil {
		applicationLogger.Warn(warningTokenizerInitMessage, zap.Error(counterError))
		return nil
	}
	return tokenCounter
}

// resolveOutputPath determines where the report is written: flag, then
// configuration, then the default file name in the working directory.
func resolveOutputPath(scanConfiguration config.ScanConfiguration, options scanOptions) (string, error) {
	outputPath := options.outputPath
	if outputPath == "" {
		outputPath = scanConfiguration.Output
	}
	if outputPath == "" {
		outputPath = config.DefaultOutputFileName
	}
	absoluteOutputPath, absoluteError := filepath.Abs(outputPath)
	if absoluteError != nil {
		return "", fmt.Errorf(errorResolveRootFormat, outputPath, absoluteError)
	}
	return absoluteOutputPath, nil
}
