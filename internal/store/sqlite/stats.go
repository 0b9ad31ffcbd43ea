package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"

	"supplierwatch/internal/repository"
)

// freshnessRow is the columnar freshness-metadata record the ingestion
// pipeline writes alongside the sqlite index, one file per source table.
// Reading it is the one place the "columnar" half of the analytical store
// is exercised directly.
type freshnessRow struct {
	SourceName string `parquet:"name=source_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	LastUpdate int64  `parquet:"name=last_update_unix, type=INT64"`
	RowCount   int64  `parquet:"name=row_count, type=INT64"`
}

var freshnessSourceFiles = []string{
	"dim_supplier.parquet",
	"fact_contract.parquet",
	"fact_sanction.parquet",
	"fact_donation.parquet",
	"fact_critical_alert.parquet",
}

type statsTotalsRow struct {
	SupplierCount int64
	ContractCount int64
	AlertCount    int64
}

// StatsRollup implements repository.StatsRepository: headline counts via
// gorm, per-source freshness off the columnar parquet siblings of the
// sqlite file. A store opened without a parquet directory (e.g. the
// in-memory test fixture) simply reports no sources rather than failing.
func (s *Store) StatsRollup(ctx context.Context) (repository.Stats, error) {
	var totals statsTotalsRow
	if err := s.gdb.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM dim_supplier) AS supplier_count,
			(SELECT COUNT(*) FROM fact_contract) AS contract_count,
			(SELECT COUNT(*) FROM fact_critical_alert) AS alert_count`).Scan(&totals).Error; err != nil {
		return repository.Stats{}, wrapStoreErr("stats totals", err)
	}

	sources, err := s.readFreshness(ctx)
	if err != nil {
		return repository.Stats{}, err
	}

	return repository.Stats{
		SupplierCount: totals.SupplierCount,
		ContractCount: totals.ContractCount,
		AlertCount:    totals.AlertCount,
		Sources:       sources,
	}, nil
}

func (s *Store) readFreshness(ctx context.Context) ([]repository.StatsSourceFreshness, error) {
	if s.parquetDir == "" {
		return nil, nil
	}
	var out []repository.StatsSourceFreshness
	for _, name := range freshnessSourceFiles {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		row, ok, err := readFreshnessFile(filepath.Join(s.parquetDir, name))
		if err != nil {
			return nil, fmt.Errorf("read freshness file %s: %w", name, err)
		}
		if !ok {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func readFreshnessFile(path string) (repository.StatsSourceFreshness, bool, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		// A missing per-source file means that source has no freshness
		// metadata yet, not a store failure.
		return repository.StatsSourceFreshness{}, false, nil
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(freshnessRow), 1)
	if err != nil {
		return repository.StatsSourceFreshness{}, false, err
	}
	defer pr.ReadStop()

	num := int(pr.GetNumRows())
	if num == 0 {
		return repository.StatsSourceFreshness{}, false, nil
	}
	rows := make([]freshnessRow, num)
	if err := pr.Read(&rows); err != nil {
		return repository.StatsSourceFreshness{}, false, err
	}
	latest := rows[0]
	for _, r := range rows[1:] {
		if r.LastUpdate > latest.LastUpdate {
			latest = r
		}
	}
	return repository.StatsSourceFreshness{
		SourceName: latest.SourceName,
		LastUpdate: time.Unix(latest.LastUpdate, 0).UTC(),
		RowCount:   latest.RowCount,
	}, true, nil
}
