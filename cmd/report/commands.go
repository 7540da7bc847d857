package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/vfg2006/erp-report-api/infrastructure/render"
	"github.com/vfg2006/erp-report-api/internal/usecases/filtering"
	"github.com/vfg2006/erp-report-api/internal/usecases/reporting"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newRootCmd(builder reporting.Builder) *cobra.Command {
	root := &cobra.Command{
		Use:           "report",
		Short:         "Monta relatórios do ERP pela linha de comando",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newKindsCmd(builder), newBuildCmd(builder))
	return root
}

func newKindsCmd(builder reporting.Builder) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "Lista os tipos de relatório disponíveis",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIPO\tTÍTULO\tCAMPO DE DATA\tDETALHE")
			for _, kind := range builder.Kinds() {
				detail := "não"
				if kind.HasDetail {
					detail = "sim"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", kind.Name, kind.Title, kind.DateField, detail)
			}
			return w.Flush()
		},
	}
}

type BuildCmd struct {
	builder   reporting.Builder
	kind      string
	start     string
	end       string
	dateField string
	text      map[string]string
	exact     map[string]string
	format    string
	out       string
	token     string
}

func newBuildCmd(builder reporting.Builder) *cobra.Command {
	bc := &BuildCmd{builder: builder}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Monta um relatório e grava em json, xlsx ou html",
		RunE:  bc.run,
	}

	cmd.Flags().StringVar(&bc.kind, "kind", "", "Tipo de relatório (veja o comando kinds)")
	cmd.Flags().StringVar(&bc.start, "start", "", "Data inicial (AAAA-MM-DD ou DD/MM/AAAA)")
	cmd.Flags().StringVar(&bc.end, "end", "", "Data final (AAAA-MM-DD ou DD/MM/AAAA)")
	cmd.Flags().StringVar(&bc.dateField, "date-field", "", "Campo de data filtrado; vazio usa o campo padrão do tipo")
	cmd.Flags().StringToStringVar(&bc.text, "filter", nil, "Filtro por trecho de texto, campo=valor")
	cmd.Flags().StringToStringVar(&bc.exact, "exact", nil, "Filtro por valor exato, campo=valor")
	cmd.Flags().StringVar(&bc.format, "format", string(render.FormatJSON), "Formato de saída: json, xlsx ou html")
	cmd.Flags().StringVar(&bc.out, "out", "-", "Arquivo de saída; - escreve na saída padrão")
	cmd.Flags().StringVar(&bc.token, "token", os.Getenv("ERP_TOKEN"), "Token repassado ao ERP")

	_ = cmd.MarkFlagRequired("kind")

	return cmd
}

func (bc *BuildCmd) run(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(bc.format)
	if err != nil {
		return err
	}

	report, err := bc.builder.Build(cmd.Context(), reporting.BuildRequest{
		Kind: bc.kind,
		Filter: filtering.Input{
			DateField: bc.dateField,
			Start:     bc.start,
			End:       bc.end,
			Text:      bc.text,
			Exact:     bc.exact,
		},
		Token: bc.token,
	})
	if err != nil {
		return fmt.Errorf("falha ao montar o relatório %s: %w", bc.kind, err)
	}

	body, err := encode(report, format)
	if err != nil {
		return err
	}

	if err := bc.write(cmd.OutOrStdout(), body); err != nil {
		return err
	}

	if report.Notice != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), report.Notice.Message)
	}
	for _, failed := range report.FailedRows {
		fmt.Fprintf(cmd.ErrOrStderr(), "linha %d (id %s) sem detalhe: %s\n", failed.RowIndex, failed.ID, failed.Error)
	}

	return nil
}

func encode(report *reporting.Report, format render.Format) ([]byte, error) {
	if format == render.FormatJSON {
		return json.MarshalIndent(report, "", "  ")
	}

	banner := render.NewBanner(report.Title, report.Filter, report.GeneratedAt)
	if report.Notice != nil {
		banner.Notice = report.Notice.Message
	}
	return render.Export(format, report.Table, banner)
}

func (bc *BuildCmd) write(stdout io.Writer, body []byte) error {
	if bc.out == "" || bc.out == "-" {
		_, err := stdout.Write(body)
		return err
	}

	if err := os.WriteFile(bc.out, body, 0o644); err != nil {
		return fmt.Errorf("erro ao gravar %s: %w", bc.out, err)
	}
	return nil
}
