package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rjw57/siteconf/config"
	"github.com/rjw57/siteconf/config/reload"
	"github.com/rjw57/siteconf/config/urls"
	"github.com/rjw57/siteconf/export"
	"github.com/rs/zerolog/log"
)

const dateLayout = "2006-01-02"

// Run dispatches one command. Output meant for the user goes to out,
// diagnostics go to the global logger.
func Run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return runCheck(args, out)
	}

	cmd := args[0]

	switch cmd {
	case "check":
		return runCheck(args[1:], out)

	case "show":
		return runShow(args[1:], out)

	case "url":
		return runURL(args[1:], out)

	case "export":
		return runExport(args[1:], out)

	case "watch":
		return runWatch(ctx, args[1:], out)

	case "-h", "--help", "help":
		printGlobalHelp(out)
		return nil

	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func printGlobalHelp(out io.Writer) {
	fmt.Fprintf(out, `Usage: %s <command> [options] [settings file]

Commands:
  check       Load and validate the settings (default)
  show        Print the effective settings
  url         Render the URL and output path of one item
  export      Write the effective settings to a file
  watch       Reload the settings whenever they change

Without a settings file, %s is used, then %s/%s in the
current directory depending on %s.

Use "%s <command> -h" for command-specific options.
`, os.Args[0], config.ConfigPathEnv, config.DevelopmentFile, config.PublishFile, config.EnvironmentEnv, os.Args[0])
}

func newFlagSet(name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s %s %s\n\n", os.Args[0], name, usage)
		fmt.Fprintln(fs.Output(), "Options:")
		fs.PrintDefaults()
	}
	return fs
}

// loader returns a function loading the record named by the remaining
// command line, so watch can call it again.
func loader(fs *flag.FlagSet) (func() (*config.Config, error), error) {
	if fs.NArg() > 1 {
		return nil, fmt.Errorf("%s: at most one settings file expected", fs.Name())
	}
	path := fs.Arg(0)
	if path == "" {
		path = os.Getenv(config.ConfigPathEnv)
	}
	if path != "" {
		return func() (*config.Config, error) { return config.Load(path) }, nil
	}

	env, err := config.LoadEnvironment()
	if err != nil {
		return nil, err
	}
	return func() (*config.Config, error) {
		return config.LoadProfile(env, config.DevelopmentFile, config.PublishFile)
	}, nil
}

// load is used by the one-shot commands; their record also becomes the
// process-wide one.
func load(fs *flag.FlagSet) (*config.Config, error) {
	fn, err := loader(fs)
	if err != nil {
		return nil, err
	}
	cfg, err := fn()
	if err != nil {
		return nil, err
	}
	config.SetGlobal(cfg)
	return cfg, nil
}

func runCheck(args []string, out io.Writer) error {
	fs := newFlagSet("check", "[settings file]")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := load(fs)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: ok (%s, %d feeds)\n", cfg.Site.SiteName, cfg.Env, len(cfg.Feeds.Enabled()))
	return nil
}

func runShow(args []string, out io.Writer) error {
	fs := newFlagSet("show", "[options] [settings file]")
	format := fs.String("format", string(export.FormatYAML), "output format: yaml or py")
	fs.StringVar(format, "f", string(export.FormatYAML), "shorthand for -format")
	if err := fs.Parse(args); err != nil {
		return err
	}
	f, err := export.ParseFormat(*format)
	if err != nil {
		return err
	}
	cfg, err := load(fs)
	if err != nil {
		return err
	}
	return export.Encode(out, cfg, f)
}

func runURL(args []string, out io.Writer) error {
	fs := newFlagSet("url", "[options] [settings file]")
	kind := fs.String("kind", string(urls.KindArticle), "content kind: article, article_lang, page, category, tag or author")
	var v urls.Values
	fs.StringVar(&v.Slug, "slug", "", "item slug")
	fs.StringVar(&v.Name, "name", "", "category, tag or author name")
	fs.StringVar(&v.Lang, "lang", "", "item language")
	fs.StringVar(&v.Category, "category", "", "article category")
	fs.StringVar(&v.Author, "author", "", "article author")
	date := fs.String("date", "", "publication date, YYYY-MM-DD")
	modified := fs.String("modified", "", "modification date, YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	k, err := parseKind(*kind)
	if err != nil {
		return err
	}
	if v.Date, err = parseDate("date", *date); err != nil {
		return err
	}
	if v.Modified, err = parseDate("modified", *modified); err != nil {
		return err
	}

	cfg, err := load(fs)
	if err != nil {
		return err
	}
	url, saveAs, err := cfg.URLs.Resolve(k, v)
	if errors.Is(err, urls.ErrNotGenerated) {
		fmt.Fprintf(out, "%s: not generated\n", k)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "url:     %s\n", url)
	fmt.Fprintf(out, "save_as: %s\n", saveAs)
	fmt.Fprintf(out, "link:    %s\n", cfg.Link("index.html", url))
	return nil
}

func parseKind(s string) (urls.Kind, error) {
	for _, k := range urls.Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown content kind %q", s)
}

func parseDate(name, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("-%s: %w", name, err)
	}
	return t, nil
}

func runExport(args []string, out io.Writer) error {
	fs := newFlagSet("export", "[options] [settings file]")
	output := fs.String("o", "", "output file (required)")
	format := fs.String("format", "", "output format: yaml or py (default from the output file name)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *output == "" {
		fs.Usage()
		return errors.New("export: -o is required")
	}

	var f export.Format
	var err error
	if *format != "" {
		f, err = export.ParseFormat(*format)
	} else {
		f, err = export.FormatFor(*output)
	}
	if err != nil {
		return err
	}

	cfg, err := load(fs)
	if err != nil {
		return err
	}
	if err := export.WriteFile(*output, cfg, f); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", *output)
	return nil
}

func runWatch(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("watch", "[settings file]")
	if err := fs.Parse(args); err != nil {
		return err
	}
	fn, err := loader(fs)
	if err != nil {
		return err
	}
	holder, err := reload.NewHolder(fn)
	if err != nil {
		return err
	}

	updates := make(chan *config.Config, 1)
	holder.Subscribe(updates)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case cfg := <-updates:
				fmt.Fprintf(out, "%s: reloaded\n", cfg.Site.SiteName)
			}
		}
	}()

	log.Logger.Info().Strs("files", holder.Get().Sources).Msg("watching settings")
	err = holder.Watch(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
