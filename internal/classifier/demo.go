package classifier

// Demo labels match the fridge-objects sample set the pipeline ships with.
var demoLabels = []string{"can", "carton", "milk_bottle", "water_bottle"}

const demoInputSize = 32

// NewDemoModel builds the deterministic pretrained classifier that the
// export command writes to disk. Each label's weight vector responds to a
// different horizontal band of the downsampled grid, which is enough to give
// stable, reproducible predictions for the tutorial flow.
func NewDemoModel() *Model {
	dim := demoInputSize * demoInputSize
	weights := make([][]float64, len(demoLabels))
	bias := make([]float64, len(demoLabels))

	band := demoInputSize / len(demoLabels)
	for i := range demoLabels {
		row := make([]float64, dim)
		for gy := 0; gy < demoInputSize; gy++ {
			for gx := 0; gx < demoInputSize; gx++ {
				if gy/band == i {
					row[gy*demoInputSize+gx] = 1.0
				} else {
					row[gy*demoInputSize+gx] = -1.0 / float64(len(demoLabels)-1)
				}
			}
		}
		weights[i] = row
		bias[i] = 0
	}

	return &Model{
		Name:      "im_classif_resnet",
		Labels:    demoLabels,
		InputSize: demoInputSize,
		Weights:   weights,
		Bias:      bias,
	}
}
