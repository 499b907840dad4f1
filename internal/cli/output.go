package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/tgienger/dispatch/internal/models"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

type taskRow struct {
	ID         int64   `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	AssignedTo *string `json:"assigned_to" yaml:"assigned_to"`
}

type employeeRow struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

func writeTasks(w io.Writer, format string, tasks []models.Task) error {
	rows := make([]taskRow, len(tasks))
	for i, t := range tasks {
		rows[i] = taskRow{ID: t.ID, Name: t.Name, AssignedTo: t.AssignedTo}
	}

	if format != formatTable {
		return encode(w, format, rows)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTASK\tASSIGNED TO")
	for _, r := range rows {
		assignee := "-"
		if r.AssignedTo != nil {
			assignee = *r.AssignedTo
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", r.ID, r.Name, assignee)
	}
	return tw.Flush()
}

func writeEmployees(w io.Writer, format string, employees []models.Employee) error {
	rows := make([]employeeRow, len(employees))
	for i, e := range employees {
		rows[i] = employeeRow{ID: e.ID, Name: e.Name}
	}

	if format != formatTable {
		return encode(w, format, rows)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\n", r.ID, r.Name)
	}
	return tw.Flush()
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q (use table, json or yaml)", format)
}
