package migrator

import (
	"context"
	"fmt"
	"os"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/olekukonko/tablewriter"

	"github.com/bibkit/ilsmigrate/internal/model"
	"github.com/bibkit/ilsmigrate/internal/record"
	"github.com/bibkit/ilsmigrate/internal/search"
)

// The validators audit the relation graph after the linking passes. They are
// report-only: every finding is a table row, never an error, so a partial
// migration can still be inspected end to end.

// ValidateSerialRecords reports serials with duplicate titles and serials
// whose relation edges disagree with the children they were migrated with.
func (m *Migrator) ValidateSerialRecords(ctx context.Context) error {
	hits, err := m.index.Scan(ctx, model.RecTypeSeries,
		search.Term("mode_of_issuance", model.ModeSerial),
	)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"PID", "Title", "Issue"})

	seen := mapset.NewSet[string]()
	duplicates := mapset.NewSet[string]()
	for _, hit := range hits {
		title := hit.Source.GetString("title")
		if title == "" {
			continue
		}
		if !seen.Add(title) {
			duplicates.Add(title)
		}
	}
	for _, hit := range hits {
		title := hit.Source.GetString("title")
		if duplicates.Contains(title) {
			table.Append([]string{hit.PID, title, "duplicate title"})
		}
	}

	for _, hit := range hits {
		issues, err := m.auditSerialChildren(ctx, hit)
		if err != nil {
			return err
		}
		for _, issue := range issues {
			table.Append([]string{hit.PID, hit.Source.GetString("title"), issue})
		}
	}

	table.Render()
	fmt.Println("Serial validation check done!")
	return nil
}

// auditSerialChildren compares a serial's relation edges to the legacy
// children recorded at migration time.
func (m *Migrator) auditSerialChildren(ctx context.Context, hit search.Hit) ([]string, error) {
	children := hit.Source.Migration().Children

	relations, err := m.store.Relations(ctx, model.RecTypeSeries, hit.PID)
	if err != nil {
		return nil, err
	}
	edges := relations[model.SerialRelation]

	var issues []string
	if len(edges) != len(children) {
		issues = append(issues, fmt.Sprintf("expected %d children, found %d relations",
			len(children), len(edges)))
	}

	expected := mapset.NewSet(children...)
	for _, edge := range edges {
		child, err := m.store.GetByPID(ctx, edge.PIDType, edge.PID)
		if err != nil {
			return nil, err
		}
		recid := child.GetString("legacy_recid")
		if recid == "" {
			recid = child.Migration().MultipartLegacyRecid
		}
		if recid != "" && !expected.Contains(recid) {
			issues = append(issues, fmt.Sprintf("related record %s (recid %s) is not a migrated child",
				edge.PID, recid))
		}
	}

	return issues, nil
}

// ValidateMultipartRecords reports multipart series whose volume relations do
// not line up with the volume fragments they were migrated with.
func (m *Migrator) ValidateMultipartRecords(ctx context.Context) error {
	hits, err := m.index.Scan(ctx, model.RecTypeSeries,
		search.Term("mode_of_issuance", model.ModeMultipartMonograph),
	)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"PID", "Title", "Issue"})

	for _, hit := range hits {
		issues, err := m.auditMultipartVolumes(ctx, hit)
		if err != nil {
			return err
		}
		for _, issue := range issues {
			table.Append([]string{hit.PID, hit.Source.GetString("title"), issue})
		}
	}

	table.Render()
	fmt.Println("Multipart validation check done!")
	return nil
}

func (m *Migrator) auditMultipartVolumes(ctx context.Context, hit search.Hit) ([]string, error) {
	volumes := hit.Source.Migration().Volumes

	ordinals := mapset.NewSet[string]()
	titles := mapset.NewSet[string]()
	for _, fragment := range volumes {
		if fragment.Has("volume") {
			ordinals.Add(record.Stringify(fragment.Get("volume")))
		}
		if fragment.Has("title") {
			titles.Add(fragment.GetString("title"))
		}
	}
	if ordinals.Cardinality() == 0 {
		// nothing was migrated as a volume, nothing to audit
		return nil, nil
	}

	relations, err := m.store.Relations(ctx, model.RecTypeSeries, hit.PID)
	if err != nil {
		return nil, err
	}
	edges := relations[model.MultipartMonographRelation]

	var issues []string
	if len(edges) != ordinals.Cardinality() {
		issues = append(issues, fmt.Sprintf("expected %d volumes, found %d relations",
			ordinals.Cardinality(), len(edges)))
	}

	for _, edge := range edges {
		child, err := m.store.GetByPID(ctx, edge.PIDType, edge.PID)
		if err != nil {
			return nil, err
		}
		if titles.Cardinality() > 0 && !titles.Contains(child.GetString("title")) {
			issues = append(issues, fmt.Sprintf("volume %s title %q is not a migrated volume title",
				edge.Volume, child.GetString("title")))
		}
	}

	return issues, nil
}
