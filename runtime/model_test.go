package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMetricSet assembles a sealed set with Metric and Stock, where
// Stock.metrics is List[Metric]. The three passes mirror how the schema
// compiler drives this API.
func buildMetricSet(t *testing.T) *ModelSet {
	t.Helper()

	set := NewModelSet()

	metric, err := set.Declare("Metric")
	require.NoError(t, err)
	stock, err := set.Declare("Stock")
	require.NoError(t, err)

	metricRef, ok := set.Ref("Metric")
	require.True(t, ok)

	require.NoError(t, metric.SetFields([]Field{
		{Name: "metric_key", Type: Text(), Description: "metric identifier"},
		{Name: "metric_value", Type: Float()},
	}))
	require.NoError(t, stock.SetFields([]Field{
		{Name: "symbol", Type: Text()},
		{Name: "metrics", Type: NewList(metricRef)},
	}))

	require.NoError(t, set.Seal())
	return set
}

func TestModelSetBuild(t *testing.T) {
	t.Run("declaration order and lookup", func(t *testing.T) {
		set := buildMetricSet(t)

		assert.Equal(t, []string{"Metric", "Stock"}, set.Names())
		assert.Equal(t, 2, set.Len())
		assert.True(t, set.Sealed())

		metric, ok := set.Get("Metric")
		require.True(t, ok)
		assert.Equal(t, "Metric", metric.Name())

		_, ok = set.Get("Missing")
		assert.False(t, ok)
	})

	t.Run("duplicate declaration fails", func(t *testing.T) {
		set := NewModelSet()
		_, err := set.Declare("A")
		require.NoError(t, err)
		_, err = set.Declare("A")
		assert.ErrorContains(t, err, "already declared")
	})

	t.Run("empty name fails", func(t *testing.T) {
		set := NewModelSet()
		_, err := set.Declare("")
		assert.Error(t, err)
	})

	t.Run("references resolve before the target is filled", func(t *testing.T) {
		set := NewModelSet()
		a, err := set.Declare("A")
		require.NoError(t, err)
		_, err = set.Declare("B")
		require.NoError(t, err)

		// A's field references B while B is still a stub.
		bRef, ok := set.Ref("B")
		require.True(t, ok)
		require.NoError(t, a.SetFields([]Field{{Name: "b", Type: NewOptional(bRef)}}))

		b, _ := set.Get("B")
		require.NoError(t, b.SetFields(nil))
		assert.NoError(t, set.Seal())
	})

	t.Run("seal fails on an unfilled model", func(t *testing.T) {
		set := NewModelSet()
		_, err := set.Declare("Ghost")
		require.NoError(t, err)

		err = set.Seal()
		assert.ErrorContains(t, err, "never filled")
	})

	t.Run("seal is idempotent", func(t *testing.T) {
		set := buildMetricSet(t)
		assert.NoError(t, set.Seal())
	})

	t.Run("sealed set rejects mutation", func(t *testing.T) {
		set := buildMetricSet(t)

		_, err := set.Declare("Late")
		assert.ErrorContains(t, err, "sealed")

		metric, _ := set.Get("Metric")
		err = metric.SetFields([]Field{{Name: "x", Type: Text()}})
		assert.ErrorContains(t, err, "sealed")
	})

	t.Run("double fill fails", func(t *testing.T) {
		set := NewModelSet()
		a, err := set.Declare("A")
		require.NoError(t, err)
		require.NoError(t, a.SetFields(nil))
		err = a.SetFields(nil)
		assert.ErrorContains(t, err, "already filled")
	})

	t.Run("duplicate field names fail", func(t *testing.T) {
		set := NewModelSet()
		a, err := set.Declare("A")
		require.NoError(t, err)
		err = a.SetFields([]Field{
			{Name: "x", Type: Text()},
			{Name: "x", Type: Integer()},
		})
		assert.ErrorContains(t, err, "duplicate field")
	})

	t.Run("instantiation requires a sealed set", func(t *testing.T) {
		set := NewModelSet()
		a, err := set.Declare("A")
		require.NoError(t, err)
		require.NoError(t, a.SetFields(nil))

		_, err = a.New(map[string]interface{}{})
		assert.ErrorContains(t, err, "not sealed")
	})
}

func TestModelIntrospection(t *testing.T) {
	set := buildMetricSet(t)
	metric, _ := set.Get("Metric")

	fields := metric.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, "metric_key", fields[0].Name)
	assert.Equal(t, "metric identifier", fields[0].Description)

	field, ok := metric.Field("metric_value")
	require.True(t, ok)
	assert.Equal(t, "float", field.Type.String())

	_, ok = metric.Field("nope")
	assert.False(t, ok)

	assert.Equal(t, "Metric(metric_key: str, metric_value: float)", metric.String())

	// Mutating the returned copy leaves the model untouched.
	fields[0].Name = "hacked"
	again := metric.Fields()
	assert.Equal(t, "metric_key", again[0].Name)
}

func TestModelNew(t *testing.T) {
	set := buildMetricSet(t)
	metric, _ := set.Get("Metric")
	stock, _ := set.Get("Stock")

	t.Run("valid values", func(t *testing.T) {
		inst, err := metric.New(map[string]interface{}{
			"metric_key":   "pe_ratio",
			"metric_value": 23.5,
		})
		require.NoError(t, err)

		key, ok := inst.Get("metric_key")
		require.True(t, ok)
		assert.Equal(t, "pe_ratio", key)

		value, _ := inst.Get("metric_value")
		assert.Equal(t, 23.5, value)

		assert.Same(t, metric, inst.Model())
	})

	t.Run("values normalize", func(t *testing.T) {
		inst, err := metric.New(map[string]interface{}{
			"metric_key":   "volume",
			"metric_value": 1000, // int into a float field
		})
		require.NoError(t, err)

		value, _ := inst.Get("metric_value")
		assert.Equal(t, float64(1000), value)
	})

	t.Run("missing required field", func(t *testing.T) {
		_, err := metric.New(map[string]interface{}{"metric_key": "incomplete"})
		require.Error(t, err)

		verrs, ok := err.(*ValidationErrors)
		require.True(t, ok, "error should be *ValidationErrors, got %T", err)
		assert.Equal(t, "Metric", verrs.Model)
		assert.Contains(t, verrs.FieldErrors("metric_value"), "field is required")
	})

	t.Run("wrong type names the field", func(t *testing.T) {
		_, err := metric.New(map[string]interface{}{
			"metric_key":   42,
			"metric_value": 1.0,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "metric_key")
	})

	t.Run("unknown keys are ignored", func(t *testing.T) {
		inst, err := metric.New(map[string]interface{}{
			"metric_key":   "x",
			"metric_value": 1.0,
			"unrelated":    true,
		})
		require.NoError(t, err)
		_, ok := inst.Get("unrelated")
		assert.False(t, ok)
	})

	t.Run("nested instances", func(t *testing.T) {
		m1, err := metric.New(map[string]interface{}{"metric_key": "a", "metric_value": 1.0})
		require.NoError(t, err)
		m2, err := metric.New(map[string]interface{}{"metric_key": "b", "metric_value": 2.0})
		require.NoError(t, err)

		inst, err := stock.New(map[string]interface{}{
			"symbol":  "ACME",
			"metrics": []*Instance{m1, m2},
		})
		require.NoError(t, err)

		metrics, _ := inst.Get("metrics")
		items := metrics.([]interface{})
		require.Len(t, items, 2)
		assert.Same(t, m1, items[0])
	})

	t.Run("nested mappings coerce into instances", func(t *testing.T) {
		inst, err := stock.New(map[string]interface{}{
			"symbol": "ACME",
			"metrics": []interface{}{
				map[string]interface{}{"metric_key": "a", "metric_value": 1.0},
			},
		})
		require.NoError(t, err)

		metrics, _ := inst.Get("metrics")
		items := metrics.([]interface{})
		require.Len(t, items, 1)

		coerced, ok := items[0].(*Instance)
		require.True(t, ok, "nested mapping should become an Instance")
		key, _ := coerced.Get("metric_key")
		assert.Equal(t, "a", key)
	})

	t.Run("nested mappings with the wrong shape fail", func(t *testing.T) {
		_, err := stock.New(map[string]interface{}{
			"symbol": "ACME",
			"metrics": []interface{}{
				map[string]interface{}{"invalid": "data"},
			},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "metrics")
	})

	t.Run("instance of another model is rejected", func(t *testing.T) {
		m1, err := metric.New(map[string]interface{}{"metric_key": "a", "metric_value": 1.0})
		require.NoError(t, err)
		s1, err := stock.New(map[string]interface{}{"symbol": "X", "metrics": []*Instance{m1}})
		require.NoError(t, err)

		_, err = stock.New(map[string]interface{}{
			"symbol":  "Y",
			"metrics": []interface{}{s1}, // a Stock where a Metric belongs
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected Metric instance, got Stock")
	})
}

func TestModelValidate(t *testing.T) {
	set := buildMetricSet(t)
	metric, _ := set.Get("Metric")

	assert.NoError(t, metric.Validate(map[string]interface{}{
		"metric_key":   "ok",
		"metric_value": 1.0,
	}))
	assert.Error(t, metric.Validate(map[string]interface{}{
		"metric_key": "missing value",
	}))
}

func TestOptionalFieldsMayBeOmitted(t *testing.T) {
	set := NewModelSet()
	profile, err := set.Declare("Profile")
	require.NoError(t, err)
	require.NoError(t, profile.SetFields([]Field{
		{Name: "name", Type: Text()},
		{Name: "bio", Type: NewOptional(Text())},
	}))
	require.NoError(t, set.Seal())

	inst, err := profile.New(map[string]interface{}{"name": "casey"})
	require.NoError(t, err)

	bio, ok := inst.Get("bio")
	require.True(t, ok, "omitted optional fields are still present")
	assert.Nil(t, bio)

	inst, err = profile.New(map[string]interface{}{"name": "casey", "bio": nil})
	require.NoError(t, err)
	bio, _ = inst.Get("bio")
	assert.Nil(t, bio)
}

func TestMutualReferences(t *testing.T) {
	set := NewModelSet()
	person, err := set.Declare("Person")
	require.NoError(t, err)
	company, err := set.Declare("Company")
	require.NoError(t, err)

	personRef, _ := set.Ref("Person")
	companyRef, _ := set.Ref("Company")

	require.NoError(t, person.SetFields([]Field{
		{Name: "name", Type: Text()},
		{Name: "employer", Type: NewOptional(companyRef)},
	}))
	require.NoError(t, company.SetFields([]Field{
		{Name: "name", Type: Text()},
		{Name: "ceo", Type: NewOptional(personRef)},
	}))
	require.NoError(t, set.Seal())

	boss, err := person.New(map[string]interface{}{"name": "Jo"})
	require.NoError(t, err)

	acme, err := company.New(map[string]interface{}{"name": "Acme", "ceo": boss})
	require.NoError(t, err)

	employee, err := person.New(map[string]interface{}{"name": "Sam", "employer": acme})
	require.NoError(t, err)

	employer, _ := employee.Get("employer")
	assert.Same(t, acme, employer)
}

func TestInstanceValues(t *testing.T) {
	set := buildMetricSet(t)
	metric, _ := set.Get("Metric")

	inst, err := metric.New(map[string]interface{}{
		"metric_key":   "x",
		"metric_value": 9.0,
	})
	require.NoError(t, err)

	values := inst.Values()
	assert.Equal(t, map[string]interface{}{"metric_key": "x", "metric_value": 9.0}, values)

	// The copy is detached from the instance.
	values["metric_key"] = "mutated"
	key, _ := inst.Get("metric_key")
	assert.Equal(t, "x", key)

	assert.Equal(t, "Metric(metric_key=x, metric_value=9)", inst.String())
}
