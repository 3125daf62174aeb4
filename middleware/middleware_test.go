package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"casereview/api/contexts"
	"casereview/api/models"
	tissueType "casereview/api/models/constants/tissue-type"

	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
)

func setUpContext(path string) *contexts.CaseReviewContext {
	cfg := &models.Config{}
	cfg.RnaSeq.SplicePadding = 100

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()

	return &contexts.CaseReviewContext{
		Context: e.NewContext(req, rec),
		Config:  cfg,
	}
}

func passThrough(called *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*called = true
		return nil
	}
}

func TestValidateOptionalChromosomeAttribute(t *testing.T) {
	t.Run("absent chromosome passes through", func(t *testing.T) {
		gc := setUpContext("/variants/get/by/variantId")

		called := false
		err := ValidateOptionalChromosomeAttribute(passThrough(&called))(gc)

		assert.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("chr prefixes are normalized downstream", func(t *testing.T) {
		gc := setUpContext("/variants/get/by/variantId?chromosome=chrX")

		called := false
		err := ValidateOptionalChromosomeAttribute(passThrough(&called))(gc)

		assert.NoError(t, err)
		assert.Equal(t, "X", gc.Chromosome)
	})

	t.Run("bogus chromosome is rejected", func(t *testing.T) {
		gc := setUpContext("/variants/get/by/variantId?chromosome=chr99")

		called := false
		err := ValidateOptionalChromosomeAttribute(passThrough(&called))(gc)

		assert.IsType(t, &echo.HTTPError{}, err)
		assert.Equal(t, http.StatusBadRequest, err.(*echo.HTTPError).Code)
		assert.False(t, called)
	})
}

func TestMandateCalibratedBounds(t *testing.T) {
	t.Run("both bounds in order pass", func(t *testing.T) {
		gc := setUpContext("/variants/get/by/variantId?lowerBound=100&upperBound=200")

		called := false
		err := MandateCalibratedBounds(passThrough(&called))(gc)

		assert.NoError(t, err)
		assert.Equal(t, 100, gc.LowerBound)
		assert.Equal(t, 200, gc.UpperBound)
	})

	t.Run("one-sided bounds are rejected", func(t *testing.T) {
		gc := setUpContext("/variants/get/by/variantId?lowerBound=100")

		err := MandateCalibratedBounds(func(c echo.Context) error { return nil })(gc)

		assert.IsType(t, &echo.HTTPError{}, err)
	})

	t.Run("inverted bounds are rejected", func(t *testing.T) {
		gc := setUpContext("/variants/get/by/variantId?lowerBound=200&upperBound=100")

		err := MandateCalibratedBounds(func(c echo.Context) error { return nil })(gc)

		assert.IsType(t, &echo.HTTPError{}, err)
	})
}

func TestMandateIndividualGuidAttributes(t *testing.T) {
	t.Run("singular guid is collected", func(t *testing.T) {
		gc := setUpContext("/rnaseq/load/run?individualGuid=I-1")

		err := MandateIndividualGuidSingularAttribute(func(c echo.Context) error { return nil })(gc)

		assert.NoError(t, err)
		assert.Equal(t, []string{"I-1"}, gc.IndividualGuids)
	})

	t.Run("plural guids are comma split", func(t *testing.T) {
		gc := setUpContext("/rnaseq/outliers/get/by/individualId?individualGuids=I-1,I-2,I-3")

		err := MandateIndividualGuidsPluralAttribute(func(c echo.Context) error { return nil })(gc)

		assert.NoError(t, err)
		assert.Equal(t, []string{"I-1", "I-2", "I-3"}, gc.IndividualGuids)
	})

	t.Run("missing guids are rejected", func(t *testing.T) {
		gc := setUpContext("/rnaseq/outliers/get/by/individualId")

		err := MandateIndividualGuidsPluralAttribute(func(c echo.Context) error { return nil })(gc)

		assert.IsType(t, &echo.HTTPError{}, err)
	})
}

func TestValidateOptionalTissueTypeAttribute(t *testing.T) {
	t.Run("known tissue is cast and set", func(t *testing.T) {
		gc := setUpContext("/rnaseq/outliers/get/by/individualId?tissueType=M")

		err := ValidateOptionalTissueTypeAttribute(func(c echo.Context) error { return nil })(gc)

		assert.NoError(t, err)
		assert.Equal(t, tissueType.Muscle, gc.TissueType)
	})

	t.Run("absent tissue stays unset", func(t *testing.T) {
		gc := setUpContext("/rnaseq/outliers/get/by/individualId")

		err := ValidateOptionalTissueTypeAttribute(func(c echo.Context) error { return nil })(gc)

		assert.NoError(t, err)
		assert.Equal(t, tissueType.Unknown, gc.TissueType)
	})

	t.Run("unknown tissue is rejected", func(t *testing.T) {
		gc := setUpContext("/rnaseq/outliers/get/by/individualId?tissueType=XYZ")

		err := ValidateOptionalTissueTypeAttribute(func(c echo.Context) error { return nil })(gc)

		assert.IsType(t, &echo.HTTPError{}, err)
	})
}

func TestCalibrateOptionalPaddingAttribute(t *testing.T) {
	t.Run("absent padding falls back to the configured default", func(t *testing.T) {
		gc := setUpContext("/rnaseq/outliers/overlapping/by/variantId")

		err := CalibrateOptionalPaddingAttribute(func(c echo.Context) error { return nil })(gc)

		assert.NoError(t, err)
		assert.Equal(t, 100, gc.Padding)
	})

	t.Run("explicit padding overrides", func(t *testing.T) {
		gc := setUpContext("/rnaseq/outliers/overlapping/by/variantId?padding=250")

		err := CalibrateOptionalPaddingAttribute(func(c echo.Context) error { return nil })(gc)

		assert.NoError(t, err)
		assert.Equal(t, 250, gc.Padding)
	})

	t.Run("negative padding is rejected", func(t *testing.T) {
		gc := setUpContext("/rnaseq/outliers/overlapping/by/variantId?padding=-1")

		err := CalibrateOptionalPaddingAttribute(func(c echo.Context) error { return nil })(gc)

		assert.IsType(t, &echo.HTTPError{}, err)
	})
}
