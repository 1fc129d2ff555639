package features

import "github.com/tsfeat/tsfeat/internal/catalog"

// Registry names for the built-in masters. Catalog stores persist these, so
// they are part of the on-disk contract and must not be renamed.
const (
	FuncDistributionMoments      = "distribution_moments"
	FuncMeanAbsChange            = "mean_abs_change"
	FuncAutocorrelationStructure = "autocorrelation_structure"
	FuncSpectralSummary          = "spectral_summary"
	FuncHistogramEntropy         = "histogram_entropy"
	FuncARModelFit               = "ar2_model_fit"
)

func init() {
	catalog.Register(FuncDistributionMoments, DistributionMoments)
	catalog.Register(FuncMeanAbsChange, MeanAbsChange)
	catalog.Register(FuncAutocorrelationStructure, AutocorrelationStructure)
	catalog.Register(FuncSpectralSummary, SpectralSummary)
	catalog.Register(FuncHistogramEntropy, HistogramEntropy)
	catalog.Register(FuncARModelFit, ARModelFit)
}

// DefaultCatalog returns the built-in master and operation lists, fully
// linked. Operation order is the feature-vector order.
func DefaultCatalog() ([]catalog.MasterOperation, []catalog.Operation) {
	masters := []catalog.MasterOperation{
		{ID: 1, Label: "Distribution moments", FuncName: FuncDistributionMoments, Fn: DistributionMoments},
		{ID: 2, Label: "Mean absolute change", FuncName: FuncMeanAbsChange, Fn: MeanAbsChange},
		{ID: 3, Label: "Autocorrelation structure", FuncName: FuncAutocorrelationStructure, Fn: AutocorrelationStructure},
		{ID: 4, Label: "Spectral summary", FuncName: FuncSpectralSummary, Fn: SpectralSummary},
		{ID: 5, Label: "Histogram entropy", FuncName: FuncHistogramEntropy, Fn: HistogramEntropy},
		{ID: 6, Label: "AR(2) model fit", FuncName: FuncARModelFit, Fn: ARModelFit},
	}

	ops := []catalog.Operation{
		{ID: 101, Name: "moments_mean", MasterID: 1, Field: "mean"},
		{ID: 102, Name: "moments_std", MasterID: 1, Field: "std"},
		{ID: 103, Name: "moments_skew", MasterID: 1, Field: "skew"},
		{ID: 104, Name: "moments_kurtosis", MasterID: 1, Field: "kurtosis"},
		{ID: 105, Name: "moments_min", MasterID: 1, Field: "min"},
		{ID: 106, Name: "moments_max", MasterID: 1, Field: "max"},
		{ID: 107, Name: "moments_median", MasterID: 1, Field: "median"},
		{ID: 108, Name: "moments_iqr", MasterID: 1, Field: "iqr"},
		{ID: 109, Name: "moments_range", MasterID: 1, Field: "range"},
		{ID: 110, Name: "mean_abs_change", MasterID: 2, Field: ""},
		{ID: 111, Name: "acf_ac1", MasterID: 3, Field: "ac1"},
		{ID: 112, Name: "acf_ac2", MasterID: 3, Field: "ac2"},
		{ID: 113, Name: "acf_ac3", MasterID: 3, Field: "ac3"},
		{ID: 114, Name: "acf_sum_abs_10", MasterID: 3, Field: "sum_abs_10"},
		{ID: 115, Name: "acf_first_zero", MasterID: 3, Field: "first_zero"},
		{ID: 116, Name: "acf_decay_time", MasterID: 3, Field: "decay_time"},
		{ID: 117, Name: "spec_peak_freq", MasterID: 4, Field: "peak_freq"},
		{ID: 118, Name: "spec_centroid", MasterID: 4, Field: "centroid"},
		{ID: 119, Name: "spec_entropy", MasterID: 4, Field: "entropy"},
		{ID: 120, Name: "spec_total_power", MasterID: 4, Field: "total_power"},
		{ID: 121, Name: "hist_entropy", MasterID: 5, Field: "entropy"},
		{ID: 122, Name: "hist_norm_entropy", MasterID: 5, Field: "norm_entropy"},
		{ID: 123, Name: "hist_mode_fraction", MasterID: 5, Field: "mode_fraction"},
		{ID: 124, Name: "ar2_a1", MasterID: 6, Field: "a1"},
		{ID: 125, Name: "ar2_a2", MasterID: 6, Field: "a2"},
		{ID: 126, Name: "ar2_resid_var", MasterID: 6, Field: "resid_var"},
		{ID: 127, Name: "ar2_r2", MasterID: 6, Field: "r2"},
	}

	return masters, ops
}
