// The message package contains the Message type. Messages are what
// the router receives and what handlers reply with: a topic and an
// opaque payload, conventionally JSON.
//
// You can create a new Message by calling New:
//
//    msg := message.New("my/topic", `{"hello":"world"}`)
//
// Replies carrying structured data are easier to build with NewJSON:
//
//    reply, err := message.NewJSON("greetings", map[string]string{"hello": "world"})
//
// Messages are plain values. Two messages are equal when both their
// topic and their payload are equal, so they can be compared with ==
// or used as map keys.
//
// The router never looks inside a payload. Handlers that want to can
// decode it with Decode, which uses the JSON codec, or with
// DecodeWith and any other codec.Codec:
//
//    var v struct{ Hello string }
//    if err := msg.Decode(&v); err != nil {
//        return nil, false, err
//    }
//
package message
