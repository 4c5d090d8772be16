// The router package maps topics to handlers and routes incoming
// messages to them.
//
// A Router needs no special construction, its zero value is ready
// to use. Register a handler per topic, then pass it messages:
//
//    var r router.Router
//    r.Register("foo/bar", handler.NewForwarder("other/topic"))
//
//    replies, ok, err := r.Process(ctx, message.New("foo/bar", `{"hello":"world"}`))
//
// There can only ever be one handler associated with a topic. If you
// call Register multiple times with the same topic, the last handler
// wins. Topics are matched exactly.
//
// Handlers can be halted and resumed by topic without being
// unregistered. Process returns false, with no error, both for topics
// nobody registered and for halted handlers.
//
// A Router is not safe for concurrent use. Hosts that need to call it
// from several goroutines must serialize those calls themselves, the
// way the kafka package's Consumer does.
package router
