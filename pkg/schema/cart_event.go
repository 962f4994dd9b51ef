package schema

const CartEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "cart_event",
	"fields": [
		{"name": "user_id", "type": "string"},
		{"name": "action", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "quantity", "type": "long"},
		{"name": "occurred_at", "type": "long"}
	]
}`

// CartEventV1 is the wire form of a cart activity event. OccurredAt
// is unix milliseconds.
type CartEventV1 struct {
	UserID     string `avro:"user_id"`
	Action     string `avro:"action"`
	ProductID  string `avro:"product_id"`
	Quantity   int64  `avro:"quantity"`
	OccurredAt int64  `avro:"occurred_at"`
}
