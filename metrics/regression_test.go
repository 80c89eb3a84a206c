package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	tabevalErrors "github.com/YuminosukeSato/tabeval/pkg/errors"
)

func TestMSE(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			yPred:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			want:      0.0,
			tolerance: 1e-10,
		},
		{
			name:      "simple case",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5}),
			want:      0.25, // ((0.5)² + (0.5)² + (-0.5)² + (-0.5)²) / 4
			tolerance: 1e-10,
		},
		{
			name:      "larger errors",
			yTrue:     mat.NewVecDense(3, []float64{10.0, 20.0, 30.0}),
			yPred:     mat.NewVecDense(3, []float64{12.0, 18.0, 33.0}),
			want:      17.0 / 3.0,
			tolerance: 1e-10,
		},
		{
			name:    "dimension mismatch",
			yTrue:   mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:   mat.NewVecDense(2, []float64{1.0, 2.0}),
			wantErr: true,
		},
		{
			name:    "empty vectors",
			yTrue:   &mat.VecDense{},
			yPred:   &mat.VecDense{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.yTrue, tt.yPred)

			if (err != nil) != tt.wantErr {
				t.Errorf("MSE() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if math.Abs(got-tt.want) > tt.tolerance {
					t.Errorf("MSE() = %v, want %v (tolerance: %v)", got, tt.want, tt.tolerance)
				}
			}
		})
	}
}

func TestRMSEIsSqrtOfMSE(t *testing.T) {
	tests := []struct {
		name  string
		yTrue *mat.VecDense
		yPred *mat.VecDense
	}{
		{
			name:  "small residuals",
			yTrue: mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred: mat.NewVecDense(4, []float64{1.1, 2.2, 2.9, 3.7}),
		},
		{
			name:  "large residuals",
			yTrue: mat.NewVecDense(3, []float64{100.0, 200.0, 300.0}),
			yPred: mat.NewVecDense(3, []float64{90.0, 220.0, 280.0}),
		},
		{
			name:  "zero residuals",
			yTrue: mat.NewVecDense(2, []float64{1.5, 2.5}),
			yPred: mat.NewVecDense(2, []float64{1.5, 2.5}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mse, err := MSE(tt.yTrue, tt.yPred)
			if err != nil {
				t.Fatalf("MSE() error = %v", err)
			}
			rmse, err := RMSE(tt.yTrue, tt.yPred)
			if err != nil {
				t.Fatalf("RMSE() error = %v", err)
			}

			if rmse != math.Sqrt(mse) {
				t.Errorf("RMSE() = %v, want exactly sqrt(MSE) = %v", rmse, math.Sqrt(mse))
			}
			if rmse < 0 {
				t.Errorf("RMSE() = %v, must be non-negative", rmse)
			}
		})
	}
}

func TestMAE(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0})
	yPred := mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5})

	got, err := MAE(yTrue, yPred)
	if err != nil {
		t.Fatalf("MAE() error = %v", err)
	}
	if math.Abs(got-0.5) > 1e-10 {
		t.Errorf("MAE() = %v, want 0.5", got)
	}
}

func TestR2Score(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
	}{
		{
			name:      "perfect prediction gives exactly 1",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			want:      1.0,
			tolerance: 0,
		},
		{
			name:      "mean prediction gives 0",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{2.5, 2.5, 2.5, 2.5}),
			want:      0.0,
			tolerance: 1e-10,
		},
		{
			name:      "worse than mean goes negative",
			yTrue:     mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:     mat.NewVecDense(3, []float64{3.0, 2.0, 1.0}),
			want:      -3.0,
			tolerance: 1e-10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := R2Score(tt.yTrue, tt.yPred)
			if err != nil {
				t.Fatalf("R2Score() error = %v", err)
			}
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("R2Score() = %v, want %v", got, tt.want)
			}
			if got > 1 {
				t.Errorf("R2Score() = %v, must never exceed 1", got)
			}
		})
	}
}

func TestR2ScoreDegenerateTarget(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{2.0, 2.0, 2.0, 2.0})
	yPred := mat.NewVecDense(4, []float64{1.9, 2.1, 2.0, 2.0})

	_, err := R2Score(yTrue, yPred)
	if err == nil {
		t.Fatal("R2Score() on a constant target should fail")
	}

	var degErr *tabevalErrors.DegenerateTargetError
	if !tabevalErrors.As(err, &degErr) {
		t.Fatalf("error %v is not a DegenerateTargetError", err)
	}
	if degErr.Value != 2.0 {
		t.Errorf("constant value = %v, want 2.0", degErr.Value)
	}
	if degErr.Rows != 4 {
		t.Errorf("rows = %d, want 4", degErr.Rows)
	}
}

func TestColumnVec(t *testing.T) {
	vec, err := ColumnVec("test", mat.NewDense(3, 1, []float64{1, 2, 3}))
	if err != nil {
		t.Fatalf("ColumnVec() error = %v", err)
	}
	if vec.Len() != 3 || vec.AtVec(2) != 3 {
		t.Errorf("ColumnVec() = %v", mat.Formatted(vec))
	}

	if _, err := ColumnVec("test", mat.NewDense(2, 2, nil)); err == nil {
		t.Error("ColumnVec() on a 2-column matrix should fail")
	}
}
