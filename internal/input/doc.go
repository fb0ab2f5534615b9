// Package input provides the container every ipkit command reads through.
//
// An Input starts lazy: it holds the sources and parses lines only while
// they are iterated, so a command that neither sorts nor de-duplicates
// prints results as they stream in. Sort, Unique and Materialize force
// every source to be read and parsed first; after that the Input holds the
// values in memory and never goes back.
//
//	in := input.New(network.ParseAddrOrNet, os.Stdin, sources...)
//	if err := in.Apply(sort, unique); err != nil {
//	    return err
//	}
//	for v, err := range in.All() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(v)
//	}
//
// Parse failures carry the offending text. Materialization stops at the
// first failure instead of dropping the bad record.
package input
