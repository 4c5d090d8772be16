// The handler package defines what a router hands messages to, and
// the running/halted lifecycle every handler carries.
//
// The Handler interface is small: Process a payload, and get or set
// the handler's State. The easiest way to satisfy the state half is
// to embed a Lifecycle, whose zero value is Running:
//
//    type Upper struct {
//        handler.Lifecycle
//    }
//
//    func (u *Upper) Process(ctx context.Context, payload string) ([]message.Message, bool, error) {
//        if u.IsHalted() {
//            return nil, false, nil
//        }
//        return []message.Message{message.New("upper", strings.ToUpper(payload))}, true, nil
//    }
//
// Process reports three distinct outcomes. A non-nil error means the
// payload could not be processed. A false boolean means there was
// nothing to do, which is what a halted handler must return. A true
// boolean means the payload was processed, and the returned slice,
// possibly empty, holds the replies to publish.
//
// Handlers always re-check their own state in Process, even though
// the router checks it before calling them: a handler may have its
// own reasons to refuse work.
//
// Plain functions can be turned into handlers with Func, and
// functions taking a decoded JSON value with JSONFunc:
//
//    h := handler.JSONFunc(func(ctx context.Context, v map[string]string) ([]message.Message, error) {
//        reply, err := message.NewJSON("greetings", map[string]string{"to": v["hello"]})
//        if err != nil {
//            return nil, err
//        }
//        return []message.Message{reply}, nil
//    })
//
// Forwarder is the simplest useful handler: it republishes every
// payload, unchanged, on another topic.
package handler
