// Package frontsearch embeds the frontsearch search stack in a Go program:
// items stored as Redis or Valkey hashes under a search index, and a
// per-kind-set fuzzy cache in front of it.
//
//	client, _ := frontsearch.New(ctx, frontsearch.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	_, _, _ = client.Items().Put(ctx, frontsearch.Item{
//	    UID: "cpu", Kind: "dashboard", Name: "Server CPU",
//	})
//	res, _ := client.Search(ctx, frontsearch.SearchRequest{
//	    Kinds: []string{"dashboard"},
//	    Query: "cpu srv",
//	})
//
// Requests filtered by tag or datasource go straight to the store; all other
// searches are answered from the cached kind-set. Writes made through the
// client purge the cache.
package frontsearch
