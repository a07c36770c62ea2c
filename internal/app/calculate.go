package app

import (
	"context"
	"encoding/json"
	"io"

	"github.com/guttosm/sharecgt/internal/domain/dto"
	"github.com/guttosm/sharecgt/internal/ingestion"
	"github.com/guttosm/sharecgt/internal/service"
)

// RunCalculation computes capital gains for every .csv file in dir without a
// database and writes the run to out as indented JSON.
func RunCalculation(ctx context.Context, dir string, parallel int, out io.Writer) error {
	sources, err := ingestion.DirectorySources(dir)
	if err != nil {
		return err
	}

	run, err := service.NewCalculatorService(nil, parallel).Calculate(ctx, sources)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(dto.NewCalculationResponse(run))
}
