package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
	"github.com/SscSPs/farm_management_app/internal/utils"
	"github.com/SscSPs/farm_management_app/pkg/clotureclient"
	"github.com/google/subcommands"
)

type loginCmd struct {
	email    string
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "open a session and store its token locally" }
func (*loginCmd) Usage() string {
	return `cloture login -email <email> [-password <password>]

  Authenticates against the API. The password is read from standard input
  when -password is omitted.
`
}

func (p *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.email, "email", "", "Login email.")
	f.StringVar(&p.password, "password", "", "Password. Prompted when empty.")
}

func (p *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.email == "" {
		fmt.Fprintln(os.Stderr, "-email is required")
		return subcommands.ExitUsageError
	}
	a, err := newApp()
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	password := p.password
	if password == "" {
		fmt.Fprint(os.Stderr, "Mot de passe : ")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		password = strings.TrimSpace(line)
	}

	session, err := a.auth.Login(ctx, p.email, password)
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Connecté en tant que %s (%s)\n", session.User.Name, session.User.Role)
	return subcommands.ExitSuccess
}

type logoutCmd struct{}

func (*logoutCmd) Name() string             { return "logout" }
func (*logoutCmd) Synopsis() string         { return "close the session and forget its token" }
func (*logoutCmd) Usage() string            { return "cloture logout\n" }
func (*logoutCmd) SetFlags(_ *flag.FlagSet) {}

func (*logoutCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	if err := a.auth.Logout(); err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	fmt.Println("Déconnecté.")
	return subcommands.ExitSuccess
}

type listCmd struct {
	year int
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the closures of a year, most recent month first" }
func (*listCmd) Usage() string    { return "cloture list [-year <year>]\n" }

func (p *listCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.year, "year", currentYear(), "Year to list.")
}

func (p *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := authed("")
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	items, err := a.registry.Load(ctx, p.year)
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	printMarkdown(listMarkdown(p.year, items, a.format))
	return subcommands.ExitSuccess
}

func listMarkdown(year int, items []clotureclient.Cloture, f utils.AmountFormatter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Clôtures %d\n\n", year)
	if len(items) == 0 {
		b.WriteString("Aucune clôture pour cette année.\n")
		return b.String()
	}
	b.WriteString("| Mois | Statut | Chiffre d'affaires | Résultat brut | Actions | ID |\n|---|---|---:|---:|---|---|\n")
	for _, c := range items {
		var actions []string
		if c.Actions().Validate {
			actions = append(actions, "valider")
		}
		if c.Actions().Close {
			actions = append(actions, "clôturer")
		}
		if len(actions) == 0 {
			actions = append(actions, "lecture seule")
		}
		fmt.Fprintf(&b, "| %02d/%d | %s | %s | %s | %s | `%s` |\n",
			c.Mois, c.Annee, c.Statut.Label(), f.Format(c.ChiffreAffaires), f.FormatSigned(c.ResultatBrut),
			strings.Join(actions, ", "), c.ID)
	}
	return b.String()
}

type showCmd struct {
	year int
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display the detail of one closure" }
func (*showCmd) Usage() string    { return "cloture show [-year <year>] <id>\n" }

func (p *showCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.year, "year", currentYear(), "Year of the closure.")
}

func (p *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, p.Usage())
		return subcommands.ExitUsageError
	}
	a, err := authed("")
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	if _, err := a.registry.Load(ctx, p.year); err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	c, ok := a.registry.Find(f.Arg(0))
	if !ok {
		printError(clotureclient.ErrUnknownPeriod)
		return subcommands.ExitFailure
	}
	printMarkdown(clotureclient.NewDetail(c, a.format).Markdown())
	return subcommands.ExitSuccess
}

type createCmd struct {
	year  int
	month int
}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "open the closure of a month" }
func (*createCmd) Usage() string    { return "cloture create -month <1-12> [-year <year>]\n" }

func (p *createCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.year, "year", currentYear(), "Year of the closure.")
	f.IntVar(&p.month, "month", 0, "Month of the closure (1-12).")
}

func (p *createCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := authed(domain.RoleComptable)
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	if _, err := a.registry.Load(ctx, p.year); err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	c, err := a.registry.Create(ctx, p.month, p.year)
	if !mutated(c, err) {
		return subcommands.ExitFailure
	}
	fmt.Printf("Clôture %02d/%d ouverte (%s)\n", c.Mois, c.Annee, c.ID)
	return subcommands.ExitSuccess
}

type validateCmd struct {
	year int
}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "validate an open closure" }
func (*validateCmd) Usage() string    { return "cloture validate [-year <year>] <id>\n" }

func (p *validateCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.year, "year", currentYear(), "Year of the closure.")
}

func (p *validateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, p.Usage())
		return subcommands.ExitUsageError
	}
	a, err := authed(domain.ActionValidate.RequiredRole())
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	if _, err := a.registry.Load(ctx, p.year); err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	c, err := a.registry.Validate(ctx, f.Arg(0))
	if !mutated(c, err) {
		return subcommands.ExitFailure
	}
	fmt.Printf("Clôture %02d/%d validée par %s\n", c.Mois, c.Annee, derefOr(c.ValideParNom, "-"))
	return subcommands.ExitSuccess
}

type closeCmd struct {
	year int
	yes  bool
}

func (*closeCmd) Name() string     { return "close" }
func (*closeCmd) Synopsis() string { return "close a validated closure definitively" }
func (*closeCmd) Usage() string {
	return `cloture close [-year <year>] [-yes] <id>

  The close cannot be undone. A confirmation is asked unless -yes is given.
`
}

func (p *closeCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.year, "year", currentYear(), "Year of the closure.")
	f.BoolVar(&p.yes, "yes", false, "Do not ask for confirmation.")
}

func (p *closeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, p.Usage())
		return subcommands.ExitUsageError
	}
	a, err := authed(domain.ActionClose.RequiredRole())
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	if _, err := a.registry.Load(ctx, p.year); err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	ask := func(c clotureclient.Cloture) bool {
		if p.yes {
			return true
		}
		q := fmt.Sprintf("Clôturer définitivement %02d/%d ? Cette action est irréversible.", c.Mois, c.Annee)
		return confirm(os.Stdin, os.Stderr, q)
	}
	c, err := a.registry.Close(ctx, f.Arg(0), ask)
	if !mutated(c, err) {
		return subcommands.ExitFailure
	}
	fmt.Printf("Clôture %02d/%d clôturée par %s\n", c.Mois, c.Annee, derefOr(c.ClotureParNom, "-"))
	return subcommands.ExitSuccess
}

type exportCmd struct {
	year   int
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "download the closures of a year as an Excel workbook" }
func (*exportCmd) Usage() string    { return "cloture export [-year <year>] [-o <dir-or-file>]\n" }

func (p *exportCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.year, "year", currentYear(), "Year to export.")
	f.StringVar(&p.output, "o", ".", "Output directory or file.")
}

func (p *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := authed("")
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	file, err := a.client.ExportClotures(ctx, p.year)
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	raw, err := file.Decode()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid export payload:", err)
		return subcommands.ExitFailure
	}

	target := p.output
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		target = filepath.Join(target, filepath.Base(file.Filename))
	}
	if err := os.WriteFile(target, raw, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Export écrit dans %s\n", target)
	return subcommands.ExitSuccess
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
