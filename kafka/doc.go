// Package kafka connects a router.Router to a Kafka cluster.
//
// A Consumer joins a consumer group, named after the configured
// client ID, for every topic registered on its router. Each record is
// turned into a message.Message, routed, and the replies produced by
// the handler are sent back to Kafka by a Publisher, keyed with the
// key of the record that triggered them:
//
//    cfg := kafka.NewConfig("my-service", "localhost:9092")
//
//    p, err := kafka.NewPublisher(cfg)
//    if err != nil {
//        return err
//    }
//    defer p.Close()
//
//    r := router.New()
//    r.Register("foo/bar", handler.NewForwarder("other/topic"))
//
//    c, err := kafka.New(cfg, r, p)
//    if err != nil {
//        return err
//    }
//    go c.Serve(ctx)
//    ...
//    c.Close()
//
// Sarama consumes partitions concurrently, but a router is not safe
// for concurrent use. The Consumer therefore routes one record at a
// time, and its Register, Halt and Resume methods take the same lock,
// so they are the ones to use once Serve has been called. A halt is
// seen by the next record routed after Halt returns.
//
// When a handler fails, or its replies cannot be published, the
// record is handed to Config.Discarded, which decides whether its
// offset is marked. Without a Discarded function the failure is
// logged and the record marked. Publishing is retried with an
// exponential backoff before giving up.
//
// Tweaking the consumer
// ---------------------
// Config embeds a sarama.Config, so everything sarama offers can be
// changed after NewConfig. On top of it, Metrics receives a report
// for every record routed, and Logger receives errors coming from the
// consumer group and from failed records.
package kafka
