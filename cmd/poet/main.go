// Package main provides the CLI entrypoint for poet.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/poet/internal/config"
	"github.com/verte-zerg/poet/internal/filter"
	"github.com/verte-zerg/poet/internal/model"
	"github.com/verte-zerg/poet/internal/report"
	"github.com/verte-zerg/poet/internal/screen"
	"github.com/verte-zerg/poet/internal/wordfreq"
	"github.com/verte-zerg/poet/internal/wordlist"
)

const (
	defaultLang         = "en"
	defaultLowLetter    = 0.8
	defaultRealWord     = 0.5
	defaultMinEmoticons = 1
	defaultDictSize     = 0
	maxLineBytes        = 1 << 20
)

var (
	configPath string
	debug      bool

	checkURL           bool
	checkMention       bool
	checkHashtag       bool
	checkNumeral       bool
	checkTricky        bool
	checkBlacklist     []string
	checkBlacklistFile string
	checkLowLetter     float64
	checkLengths       string
	checkRealWord      float64
	checkLang          string
	checkDictionary    string
	checkRegex         []string
	checkIgnoreCase    bool
	checkSummary       bool
	checkPassed        bool
	checkColor         bool

	ratioLang       string
	ratioDictionary string

	emoticonsMin int

	dictLang  string
	dictSize  int
	dictForce bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "poet",
		Short:         "Screen short texts with pass/fail filters",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd.ErrOrStderr(), debug)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/poet/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "print filter diagnostics")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newRatioCmd())
	rootCmd.AddCommand(newEmoticonsCmd())
	rootCmd.AddCommand(newDictionaryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func setupLogging(w io.Writer, debug bool) {
	log.SetOutput(w)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Run filters over each line of a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCheckCmd,
	}
	cmd.Flags().BoolVar(&checkURL, "url", false, "flag lines containing http:// links")
	cmd.Flags().BoolVar(&checkMention, "mention", false, "flag lines containing @mentions")
	cmd.Flags().BoolVar(&checkHashtag, "hashtag", false, "flag lines containing #hashtags")
	cmd.Flags().BoolVar(&checkNumeral, "numeral", false, "flag lines containing digits")
	cmd.Flags().BoolVar(&checkTricky, "tricky", false, "flag lines containing accented or extended-Latin characters")
	cmd.Flags().StringSliceVar(&checkBlacklist, "blacklist", nil, "comma-separated blacklisted words")
	cmd.Flags().StringVar(&checkBlacklistFile, "blacklist-file", "", "file with one blacklisted word per line")
	cmd.Flags().Float64Var(&checkLowLetter, "low-letter", 0, fmt.Sprintf("flag lines whose letter ratio is below this cutoff (0-1, e.g. %.1f)", defaultLowLetter))
	cmd.Flags().StringVar(&checkLengths, "lengths", "", "allowed line lengths, e.g. 0,1,5-8 (others are flagged)")
	cmd.Flags().Float64Var(&checkRealWord, "real-word", 0, fmt.Sprintf("flag lines whose real-word ratio is below this cutoff (0-1, e.g. %.1f)", defaultRealWord))
	cmd.Flags().StringVar(&checkLang, "lang", defaultLang, "dictionary language")
	cmd.Flags().StringVar(&checkDictionary, "dictionary", "", "dictionary word list (default: $XDG_CONFIG_HOME/poet/wordlists/<lang>.txt)")
	cmd.Flags().StringArrayVar(&checkRegex, "regex", nil, "pattern lines must match (repeatable; non-matching lines are flagged)")
	cmd.Flags().BoolVar(&checkIgnoreCase, "ignore-case", false, "match --regex patterns case-insensitively")
	cmd.Flags().BoolVar(&checkSummary, "summary", false, "print per-filter counts instead of lines")
	cmd.Flags().BoolVar(&checkPassed, "passed", false, "print only lines no filter flagged")
	cmd.Flags().BoolVar(&checkColor, "color", false, "force colored output")
	return cmd
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	fc := fileCfg.Filters
	applyBoolConfig(cmd, "url", &checkURL, fc.URL)
	applyBoolConfig(cmd, "mention", &checkMention, fc.Mention)
	applyBoolConfig(cmd, "hashtag", &checkHashtag, fc.Hashtag)
	applyBoolConfig(cmd, "numeral", &checkNumeral, fc.Numeral)
	applyBoolConfig(cmd, "tricky", &checkTricky, fc.Tricky)
	applySliceConfig(cmd, "blacklist", &checkBlacklist, fc.Blacklist)
	applyStringConfig(cmd, "blacklist-file", &checkBlacklistFile, fc.BlacklistFile)
	applyFloatConfig(cmd, "low-letter", &checkLowLetter, fc.LowLetter)
	applyStringConfig(cmd, "lengths", &checkLengths, fc.Lengths)
	applyFloatConfig(cmd, "real-word", &checkRealWord, fc.RealWord)
	applyStringConfig(cmd, "lang", &checkLang, fc.Lang)
	applyStringConfig(cmd, "dictionary", &checkDictionary, fc.Dictionary)

	settings := model.Settings{
		URL:           checkURL,
		Mention:       checkMention,
		Hashtag:       checkHashtag,
		Numeral:       checkNumeral,
		Tricky:        checkTricky,
		Blacklist:     checkBlacklist,
		BlacklistFile: checkBlacklistFile,
		LowLetter:     checkLowLetter,
		Lengths:       checkLengths,
		RealWord:      checkRealWord,
		Lang:          checkLang,
		Dictionary:    resolveDictionaryPath(checkDictionary, checkLang),
	}
	if cmd.Flags().Changed("regex") {
		for _, pattern := range checkRegex {
			settings.Regex = append(settings.Regex, model.RegexRule{Pattern: pattern, IgnoreCase: checkIgnoreCase})
		}
	} else {
		for _, rc := range fc.Regex {
			settings.Regex = append(settings.Regex, model.RegexRule{Pattern: rc.Pattern, IgnoreCase: rc.IgnoreCase})
		}
	}

	set, err := screen.Build(settings)
	if err != nil {
		return fmt.Errorf("invalid filter configuration: %w", err)
	}
	if set.Len() == 0 {
		log.Warn("no filters enabled; every line passes")
	}

	in, closeIn, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeIn()

	out := cmd.OutOrStdout()
	opts := report.Options{Color: report.ShouldUseColor(out, checkColor)}
	if report.IsTerminal(out) {
		opts.Width = report.TerminalWidth()
	}

	var verdicts []model.Verdict
	passed := 0
	err = eachLine(in, func(line string) error {
		v := set.Evaluate(line)
		if v.Passed() {
			passed++
		}
		if checkSummary {
			verdicts = append(verdicts, model.Verdict{Flagged: v.Flagged})
			return nil
		}
		if checkPassed {
			if !v.Passed() {
				return nil
			}
			_, err := fmt.Fprintln(out, line)
			return err
		}
		if v.Passed() {
			return nil
		}
		_, err := fmt.Fprintln(out, report.VerdictLine(v, opts))
		return err
	})
	if err != nil {
		return err
	}

	if checkSummary {
		return report.WriteSummary(out, set.Summarize(verdicts), passed, len(verdicts), opts.Color)
	}
	return nil
}

func newRatioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ratio [file]",
		Short: "Print the real-word ratio of each line",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRatioCmd,
	}
	cmd.Flags().StringVar(&ratioLang, "lang", defaultLang, "dictionary language")
	cmd.Flags().StringVar(&ratioDictionary, "dictionary", "", "dictionary word list (default: $XDG_CONFIG_HOME/poet/wordlists/<lang>.txt)")
	return cmd
}

func runRatioCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "lang", &ratioLang, fileCfg.Filters.Lang)
	applyStringConfig(cmd, "dictionary", &ratioDictionary, fileCfg.Filters.Dictionary)

	path := resolveDictionaryPath(ratioDictionary, ratioLang)
	dict := wordlist.NewDictionary(wordlist.FileSource{Path: path}, wordlist.FilterForLang(ratioLang))
	if err := dict.Load(); err != nil {
		return dictionaryLoadError(ratioLang, path, err)
	}
	scorer := filter.NewScorer(dict)

	in, closeIn, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeIn()

	out := cmd.OutOrStdout()
	return eachLine(in, func(line string) error {
		ratio, ok, err := scorer.Score(line)
		if err != nil {
			return err
		}
		value := "-"
		if ok {
			value = fmt.Sprintf("%.4f", ratio)
		}
		_, err = fmt.Fprintf(out, "%s\t%s\n", value, line)
		return err
	})
}

func newEmoticonsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emoticons [file]",
		Short: "Print the emoticons found in each line",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEmoticonsCmd,
	}
	cmd.Flags().IntVar(&emoticonsMin, "min", defaultMinEmoticons, "only print lines with at least this many emoticons")
	return cmd
}

func runEmoticonsCmd(cmd *cobra.Command, args []string) error {
	if emoticonsMin < 0 {
		return fmt.Errorf("--min must be >= 0")
	}
	in, closeIn, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeIn()

	out := cmd.OutOrStdout()
	return eachLine(in, func(line string) error {
		emotes := filter.Emoticons(line)
		if len(emotes) < emoticonsMin {
			return nil
		}
		_, err := fmt.Fprintf(out, "%s\t%s\n", strings.Join(emotes, " "), line)
		return err
	})
}

func newDictionaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dictionary",
		Short: "Download dictionaries for the real-word filter",
		Args:  cobra.NoArgs,
		RunE:  runDictionaryCmd,
	}
	cmd.Flags().StringVar(&dictLang, "lang", "", "language code, comma-separated list or 'all' (default: en)")
	cmd.Flags().IntVar(&dictSize, "size", defaultDictSize, "keep only the N most frequent words (0 keeps all)")
	cmd.Flags().BoolVar(&dictForce, "force", false, "overwrite existing files")
	return cmd
}

func runDictionaryCmd(cmd *cobra.Command, _ []string) error {
	if dictSize < 0 {
		return fmt.Errorf("--size must be >= 0")
	}

	log.Info("Fetching wordfreq metadata...")
	wheel, err := wordfreq.DownloadLatestWheel(cmd.Context(), config.DefaultWordfreqCacheDir())
	if err != nil {
		return fmt.Errorf("failed to download wordfreq wheel: %w", err)
	}
	if wheel.Cached {
		log.Infof("Using cached wheel %s", wheel.Filename)
	} else {
		log.Infof("Downloaded wheel %s", wheel.Filename)
	}
	return buildDictionaries(wheel.Path, config.DefaultWordListDir())
}

func buildDictionaries(wheelPath, outDir string) error {
	available, err := wordfreq.ListLanguages(wheelPath)
	if err != nil {
		return fmt.Errorf("failed to list languages: %w", err)
	}
	langs, allRequested, err := resolveDictionaryLangs(dictLang, available)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, lang := range langs {
		outPath := filepath.Join(outDir, lang+".txt")
		if !dictForce {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("dictionary already exists: %s (use --force to overwrite)", outPath)
			} else if !os.IsNotExist(err) {
				return fmt.Errorf("failed to stat dictionary: %w", err)
			}
		}

		log.Infof("Extracting %s dictionary...", lang)
		words, err := wordfreq.Source{Wheel: wheelPath, Lang: lang, Limit: dictSize}.Words()
		if err != nil {
			if allRequested {
				log.Warnf("Skipping %s: %v", lang, err)
				continue
			}
			return fmt.Errorf("failed to extract %s dictionary: %w", lang, err)
		}
		if err := writeWordList(outPath, words); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		log.Infof("Wrote %s (%d words)", outPath, len(words))
	}

	if err := wordfreq.WriteAttribution(wheelPath, outDir); err != nil {
		return fmt.Errorf("failed to write attribution: %w", err)
	}
	return nil
}

func resolveDictionaryLangs(lang string, available []string) ([]string, bool, error) {
	lang = strings.TrimSpace(strings.ToLower(lang))
	if lang == "" {
		lang = defaultLang
	}
	if lang == "all" {
		return append([]string(nil), available...), true, nil
	}
	availableSet := make(map[string]struct{}, len(available))
	for _, a := range available {
		availableSet[a] = struct{}{}
	}
	var requested []string
	for _, part := range strings.Split(lang, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := availableSet[part]; !ok {
			return nil, false, fmt.Errorf("unknown language %q (available: %s)", part, strings.Join(available, ", "))
		}
		requested = append(requested, part)
	}
	if len(requested) == 0 {
		return nil, false, fmt.Errorf("--lang must not be empty")
	}
	return requested, false, nil
}

func writeWordList(path string, words []string) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "dictionary-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp dictionary: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	for _, word := range words {
		if _, err := fmt.Fprintln(writer, word); err != nil {
			return fmt.Errorf("failed to write dictionary: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush dictionary: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close dictionary: %w", err)
	}
	return os.Rename(tmpPath, path)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := resolveConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func loadFileConfig() (config.FileConfig, error) {
	cfg, err := config.LoadConfig(resolveConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

func resolveDictionaryPath(path, lang string) string {
	if path != "" {
		return path
	}
	return config.DefaultWordListPath(lang)
}

func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	file, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return file, func() {
		if cerr := file.Close(); cerr != nil {
			log.Warnf("failed to close input: %v", cerr)
		}
	}, nil
}

func eachLine(r io.Reader, fn func(string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if err := fn(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applySliceConfig(cmd *cobra.Command, name string, target *[]string, value []string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# poet configuration
# Uncomment a value to enable it. CLI flags override config values.

[filters]
# url = true                # Flag lines containing http:// links
# mention = true            # Flag lines containing @mentions
# hashtag = true            # Flag lines containing #hashtags
# numeral = true            # Flag lines containing digits
# tricky = true             # Flag accented or extended-Latin characters
# blacklist = ["spam"]      # Flag lines containing these words
# blacklist-file = ""       # One blacklisted word per line
# low-letter = %.1f          # Flag lines whose letter ratio is below this (0-1)
# lengths = "1-140"         # Allowed line lengths; others are flagged
# real-word = %.1f           # Flag lines whose real-word ratio is below this (0-1)
# lang = %q               # Dictionary language
# dictionary = ""           # Dictionary word list path

# Lines that do not match a pattern are flagged.
# [[filters.regex]]
# pattern = "^RT "
# ignore-case = true
`,
		defaultLowLetter,
		defaultRealWord,
		defaultLang,
	)
}

func dictionaryLoadError(lang, path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load dictionary: %v", err),
		fmt.Sprintf("expected word list at: %s", path),
		fmt.Sprintf("language %q not found", lang),
		"Download: poet dictionary --lang " + lang,
		"Download all: poet dictionary --lang all",
		"Or pass a word list with --dictionary <file>",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}
