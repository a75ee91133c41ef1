// Package gem compiles declarative schema documents into runtime model
// definitions.
//
// A gem document is YAML with an output_models list. Each model declares
// named, typed, described fields; field types may reference other models
// in the document, including models declared later:
//
//	output_models:
//	  - name: Stock
//	    fields:
//	      - name: symbol
//	        type: str
//	        desc: Ticker symbol
//	      - name: metrics
//	        type: List[Metric]
//	        desc: Computed metrics
//	  - name: Metric
//	    fields:
//	      - name: metric_key
//	        type: str
//	      - name: metric_value
//	        type: float
//
// Compiling produces a runtime.ModelSet whose models can be instantiated
// and validated:
//
//	set, err := gem.CompileString(source)
//	if err != nil {
//		return err
//	}
//	stock, _ := set.Get("Stock")
//	inst, err := stock.New(map[string]interface{}{
//		"symbol":  "ACME",
//		"metrics": []interface{}{},
//	})
//
// Compilation runs in phases: the document is loaded and shape-checked,
// every field's type expression is parsed against the declared models and
// the type registry, the model reference graph is checked for cycles, and
// finally models are built in three passes (declare stubs, fill fields,
// seal). Any failure aborts the compilation with no partial results.
//
// Hosts extend the type system by registering custom scalar types:
//
//	c := gem.NewCompiler()
//	c.RegisterType("email", runtime.Custom("email", checkEmail))
//	set, err := c.CompileString(source)
package gem
