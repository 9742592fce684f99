// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"

	"github.com/medtrix/medtrix/ent/migrate"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql"
	"github.com/medtrix/medtrix/ent/airequest"
	"github.com/medtrix/medtrix/ent/keyvalue"
)

// Client is the client that holds all ent builders.
type Client struct {
	config
	// Schema is the client for creating, migrating and dropping schema.
	Schema *migrate.Schema
	// AIRequest is the client for interacting with the AIRequest builders.
	AIRequest *AIRequestClient
	// KeyValue is the client for interacting with the KeyValue builders.
	KeyValue *KeyValueClient
}

// NewClient creates a new client configured with the given options.
func NewClient(opts ...Option) *Client {
	client := &Client{config: newConfig(opts...)}
	client.init()
	return client
}

func (c *Client) init() {
	c.Schema = migrate.NewSchema(c.driver)
	c.AIRequest = NewAIRequestClient(c.config)
	c.KeyValue = NewKeyValueClient(c.config)
}

type (
	// config is the configuration for the client and its builder.
	config struct {
		// driver used for executing database requests.
		driver dialect.Driver
		// debug enable a debug logging.
		debug bool
		// log used for logging on debug mode.
		log func(...any)
		// hooks to execute on mutations.
		hooks *hooks
		// interceptors to execute on queries.
		inters *inters
	}
	// Option function to configure the client.
	Option func(*config)
)

// newConfig creates a new config for the client.
func newConfig(opts ...Option) config {
	cfg := config{log: log.Println, hooks: &hooks{}, inters: &inters{}}
	cfg.options(opts...)
	return cfg
}

// options applies the options on the config object.
func (c *config) options(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
	if c.debug {
		c.driver = dialect.Debug(c.driver, c.log)
	}
}

// Debug enables debug logging on the ent.Driver.
func Debug() Option {
	return func(c *config) {
		c.debug = true
	}
}

// Log sets the logging function for debug mode.
func Log(fn func(...any)) Option {
	return func(c *config) {
		c.log = fn
	}
}

// Driver configures the client driver.
func Driver(driver dialect.Driver) Option {
	return func(c *config) {
		c.driver = driver
	}
}

// Open opens a database/sql.DB specified by the driver name and
// the data source name, and returns a new client attached to it.
// Optional parameters can be added for configuring the client.
func Open(driverName, dataSourceName string, options ...Option) (*Client, error) {
	switch driverName {
	case dialect.MySQL, dialect.Postgres, dialect.SQLite:
		drv, err := sql.Open(driverName, dataSourceName)
		if err != nil {
			return nil, err
		}
		return NewClient(append(options, Driver(drv))...), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %q", driverName)
	}
}

// ErrTxStarted is returned when trying to start a new transaction from a transactional client.
var ErrTxStarted = errors.New("ent: cannot start a transaction within a transaction")

// Tx returns a new transactional client. The provided context
// is used until the transaction is committed or rolled back.
func (c *Client) Tx(ctx context.Context) (*Tx, error) {
	if _, ok := c.driver.(*txDriver); ok {
		return nil, ErrTxStarted
	}
	tx, err := newTx(ctx, c.driver)
	if err != nil {
		return nil, fmt.Errorf("ent: starting a transaction: %w", err)
	}
	cfg := c.config
	cfg.driver = tx
	return &Tx{
		ctx:       ctx,
		config:    cfg,
		AIRequest: NewAIRequestClient(cfg),
		KeyValue:  NewKeyValueClient(cfg),
	}, nil
}

// BeginTx returns a transactional client with specified options.
func (c *Client) BeginTx(ctx context.Context, opts *sql.TxOptions) (*Tx, error) {
	if _, ok := c.driver.(*txDriver); ok {
		return nil, errors.New("ent: cannot start a transaction within a transaction")
	}
	tx, err := c.driver.(interface {
		BeginTx(context.Context, *sql.TxOptions) (dialect.Tx, error)
	}).BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("ent: starting a transaction: %w", err)
	}
	cfg := c.config
	cfg.driver = &txDriver{tx: tx, drv: c.driver}
	return &Tx{
		ctx:       ctx,
		config:    cfg,
		AIRequest: NewAIRequestClient(cfg),
		KeyValue:  NewKeyValueClient(cfg),
	}, nil
}

// Debug returns a new debug-client. It's used to get verbose logging on specific operations.
//
//	client.Debug().
//		AIRequest.
//		Query().
//		Count(ctx)
func (c *Client) Debug() *Client {
	if c.debug {
		return c
	}
	cfg := c.config
	cfg.driver = dialect.Debug(c.driver, c.log)
	client := &Client{config: cfg}
	client.init()
	return client
}

// Close closes the database connection and prevents new queries from starting.
func (c *Client) Close() error {
	return c.driver.Close()
}

// Use adds the mutation hooks to all the entity clients.
// In order to add hooks to a specific client, call: `client.Node.Use(...)`.
func (c *Client) Use(hooks ...Hook) {
	c.AIRequest.Use(hooks...)
	c.KeyValue.Use(hooks...)
}

// Intercept adds the query interceptors to all the entity clients.
// In order to add interceptors to a specific client, call: `client.Node.Intercept(...)`.
func (c *Client) Intercept(interceptors ...Interceptor) {
	c.AIRequest.Intercept(interceptors...)
	c.KeyValue.Intercept(interceptors...)
}

// Mutate implements the ent.Mutator interface.
func (c *Client) Mutate(ctx context.Context, m Mutation) (Value, error) {
	switch m := m.(type) {
	case *AIRequestMutation:
		return c.AIRequest.mutate(ctx, m)
	case *KeyValueMutation:
		return c.KeyValue.mutate(ctx, m)
	default:
		return nil, fmt.Errorf("ent: unknown mutation type %T", m)
	}
}

// AIRequestClient is a client for the AIRequest schema.
type AIRequestClient struct {
	config
}

// NewAIRequestClient returns a client for the AIRequest from the given config.
func NewAIRequestClient(c config) *AIRequestClient {
	return &AIRequestClient{config: c}
}

// Use adds a list of mutation hooks to the hooks stack.
// A call to `Use(f, g, h)` equals to `airequest.Hooks(f(g(h())))`.
func (c *AIRequestClient) Use(hooks ...Hook) {
	c.hooks.AIRequest = append(c.hooks.AIRequest, hooks...)
}

// Intercept adds a list of query interceptors to the interceptors stack.
// A call to `Intercept(f, g, h)` equals to `airequest.Intercept(f(g(h())))`.
func (c *AIRequestClient) Intercept(interceptors ...Interceptor) {
	c.inters.AIRequest = append(c.inters.AIRequest, interceptors...)
}

// Create returns a builder for creating a AIRequest entity.
func (c *AIRequestClient) Create() *AIRequestCreate {
	mutation := newAIRequestMutation(c.config, OpCreate)
	return &AIRequestCreate{config: c.config, hooks: c.Hooks(), mutation: mutation}
}

// CreateBulk returns a builder for creating a bulk of AIRequest entities.
func (c *AIRequestClient) CreateBulk(builders ...*AIRequestCreate) *AIRequestCreateBulk {
	return &AIRequestCreateBulk{config: c.config, builders: builders}
}

// MapCreateBulk creates a bulk creation builder from the given slice. For each item in the slice, the function creates
// a builder and applies setFunc on it.
func (c *AIRequestClient) MapCreateBulk(slice any, setFunc func(*AIRequestCreate, int)) *AIRequestCreateBulk {
	rv := reflect.ValueOf(slice)
	if rv.Kind() != reflect.Slice {
		return &AIRequestCreateBulk{err: fmt.Errorf("calling to AIRequestClient.MapCreateBulk with wrong type %T, need slice", slice)}
	}
	builders := make([]*AIRequestCreate, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		builders[i] = c.Create()
		setFunc(builders[i], i)
	}
	return &AIRequestCreateBulk{config: c.config, builders: builders}
}

// Update returns an update builder for AIRequest.
func (c *AIRequestClient) Update() *AIRequestUpdate {
	mutation := newAIRequestMutation(c.config, OpUpdate)
	return &AIRequestUpdate{config: c.config, hooks: c.Hooks(), mutation: mutation}
}

// UpdateOne returns an update builder for the given entity.
func (c *AIRequestClient) UpdateOne(_m *AIRequest) *AIRequestUpdateOne {
	mutation := newAIRequestMutation(c.config, OpUpdateOne, withAIRequest(_m))
	return &AIRequestUpdateOne{config: c.config, hooks: c.Hooks(), mutation: mutation}
}

// UpdateOneID returns an update builder for the given id.
func (c *AIRequestClient) UpdateOneID(id int) *AIRequestUpdateOne {
	mutation := newAIRequestMutation(c.config, OpUpdateOne, withAIRequestID(id))
	return &AIRequestUpdateOne{config: c.config, hooks: c.Hooks(), mutation: mutation}
}

// Delete returns a delete builder for AIRequest.
func (c *AIRequestClient) Delete() *AIRequestDelete {
	mutation := newAIRequestMutation(c.config, OpDelete)
	return &AIRequestDelete{config: c.config, hooks: c.Hooks(), mutation: mutation}
}

// DeleteOne returns a builder for deleting the given entity.
func (c *AIRequestClient) DeleteOne(_m *AIRequest) *AIRequestDeleteOne {
	return c.DeleteOneID(_m.ID)
}

// DeleteOneID returns a builder for deleting the given entity by its id.
func (c *AIRequestClient) DeleteOneID(id int) *AIRequestDeleteOne {
	builder := c.Delete().Where(airequest.ID(id))
	builder.mutation.id = &id
	builder.mutation.op = OpDeleteOne
	return &AIRequestDeleteOne{builder}
}

// Query returns a query builder for AIRequest.
func (c *AIRequestClient) Query() *AIRequestQuery {
	return &AIRequestQuery{
		config: c.config,
		ctx:    &QueryContext{Type: TypeAIRequest},
		inters: c.Interceptors(),
	}
}

// Get returns a AIRequest entity by its id.
func (c *AIRequestClient) Get(ctx context.Context, id int) (*AIRequest, error) {
	return c.Query().Where(airequest.ID(id)).Only(ctx)
}

// GetX is like Get, but panics if an error occurs.
func (c *AIRequestClient) GetX(ctx context.Context, id int) *AIRequest {
	obj, err := c.Get(ctx, id)
	if err != nil {
		panic(err)
	}
	return obj
}

// Hooks returns the client hooks.
func (c *AIRequestClient) Hooks() []Hook {
	return c.hooks.AIRequest
}

// Interceptors returns the client interceptors.
func (c *AIRequestClient) Interceptors() []Interceptor {
	return c.inters.AIRequest
}

func (c *AIRequestClient) mutate(ctx context.Context, m *AIRequestMutation) (Value, error) {
	switch m.Op() {
	case OpCreate:
		return (&AIRequestCreate{config: c.config, hooks: c.Hooks(), mutation: m}).Save(ctx)
	case OpUpdate:
		return (&AIRequestUpdate{config: c.config, hooks: c.Hooks(), mutation: m}).Save(ctx)
	case OpUpdateOne:
		return (&AIRequestUpdateOne{config: c.config, hooks: c.Hooks(), mutation: m}).Save(ctx)
	case OpDelete, OpDeleteOne:
		return (&AIRequestDelete{config: c.config, hooks: c.Hooks(), mutation: m}).Exec(ctx)
	default:
		return nil, fmt.Errorf("ent: unknown AIRequest mutation op: %q", m.Op())
	}
}

// KeyValueClient is a client for the KeyValue schema.
type KeyValueClient struct {
	config
}

// NewKeyValueClient returns a client for the KeyValue from the given config.
func NewKeyValueClient(c config) *KeyValueClient {
	return &KeyValueClient{config: c}
}

// Use adds a list of mutation hooks to the hooks stack.
// A call to `Use(f, g, h)` equals to `keyvalue.Hooks(f(g(h())))`.
func (c *KeyValueClient) Use(hooks ...Hook) {
	c.hooks.KeyValue = append(c.hooks.KeyValue, hooks...)
}

// Intercept adds a list of query interceptors to the interceptors stack.
// A call to `Intercept(f, g, h)` equals to `keyvalue.Intercept(f(g(h())))`.
func (c *KeyValueClient) Intercept(interceptors ...Interceptor) {
	c.inters.KeyValue = append(c.inters.KeyValue, interceptors...)
}

// Create returns a builder for creating a KeyValue entity.
func (c *KeyValueClient) Create() *KeyValueCreate {
	mutation := newKeyValueMutation(c.config, OpCreate)
	return &KeyValueCreate{config: c.config, hooks: c.Hooks(), mutation: mutation}
}

// CreateBulk returns a builder for creating a bulk of KeyValue entities.
func (c *KeyValueClient) CreateBulk(builders ...*KeyValueCreate) *KeyValueCreateBulk {
	return &KeyValueCreateBulk{config: c.config, builders: builders}
}

// MapCreateBulk creates a bulk creation builder from the given slice. For each item in the slice, the function creates
// a builder and applies setFunc on it.
func (c *KeyValueClient) MapCreateBulk(slice any, setFunc func(*KeyValueCreate, int)) *KeyValueCreateBulk {
	rv := reflect.ValueOf(slice)
	if rv.Kind() != reflect.Slice {
		return &KeyValueCreateBulk{err: fmt.Errorf("calling to KeyValueClient.MapCreateBulk with wrong type %T, need slice", slice)}
	}
	builders := make([]*KeyValueCreate, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		builders[i] = c.Create()
		setFunc(builders[i], i)
	}
	return &KeyValueCreateBulk{config: c.config, builders: builders}
}

// Update returns an update builder for KeyValue.
func (c *KeyValueClient) Update() *KeyValueUpdate {
	mutation := newKeyValueMutation(c.config, OpUpdate)
	return &KeyValueUpdate{config: c.config, hooks: c.Hooks(), mutation: mutation}
}

// UpdateOne returns an update builder for the given entity.
func (c *KeyValueClient) UpdateOne(_m *KeyValue) *KeyValueUpdateOne {
	mutation := newKeyValueMutation(c.config, OpUpdateOne, withKeyValue(_m))
	return &KeyValueUpdateOne{config: c.config, hooks: c.Hooks(), mutation: mutation}
}

// UpdateOneID returns an update builder for the given id.
func (c *KeyValueClient) UpdateOneID(id int) *KeyValueUpdateOne {
	mutation := newKeyValueMutation(c.config, OpUpdateOne, withKeyValueID(id))
	return &KeyValueUpdateOne{config: c.config, hooks: c.Hooks(), mutation: mutation}
}

// Delete returns a delete builder for KeyValue.
func (c *KeyValueClient) Delete() *KeyValueDelete {
	mutation := newKeyValueMutation(c.config, OpDelete)
	return &KeyValueDelete{config: c.config, hooks: c.Hooks(), mutation: mutation}
}

// DeleteOne returns a builder for deleting the given entity.
func (c *KeyValueClient) DeleteOne(_m *KeyValue) *KeyValueDeleteOne {
	return c.DeleteOneID(_m.ID)
}

// DeleteOneID returns a builder for deleting the given entity by its id.
func (c *KeyValueClient) DeleteOneID(id int) *KeyValueDeleteOne {
	builder := c.Delete().Where(keyvalue.ID(id))
	builder.mutation.id = &id
	builder.mutation.op = OpDeleteOne
	return &KeyValueDeleteOne{builder}
}

// Query returns a query builder for KeyValue.
func (c *KeyValueClient) Query() *KeyValueQuery {
	return &KeyValueQuery{
		config: c.config,
		ctx:    &QueryContext{Type: TypeKeyValue},
		inters: c.Interceptors(),
	}
}

// Get returns a KeyValue entity by its id.
func (c *KeyValueClient) Get(ctx context.Context, id int) (*KeyValue, error) {
	return c.Query().Where(keyvalue.ID(id)).Only(ctx)
}

// GetX is like Get, but panics if an error occurs.
func (c *KeyValueClient) GetX(ctx context.Context, id int) *KeyValue {
	obj, err := c.Get(ctx, id)
	if err != nil {
		panic(err)
	}
	return obj
}

// Hooks returns the client hooks.
func (c *KeyValueClient) Hooks() []Hook {
	return c.hooks.KeyValue
}

// Interceptors returns the client interceptors.
func (c *KeyValueClient) Interceptors() []Interceptor {
	return c.inters.KeyValue
}

func (c *KeyValueClient) mutate(ctx context.Context, m *KeyValueMutation) (Value, error) {
	switch m.Op() {
	case OpCreate:
		return (&KeyValueCreate{config: c.config, hooks: c.Hooks(), mutation: m}).Save(ctx)
	case OpUpdate:
		return (&KeyValueUpdate{config: c.config, hooks: c.Hooks(), mutation: m}).Save(ctx)
	case OpUpdateOne:
		return (&KeyValueUpdateOne{config: c.config, hooks: c.Hooks(), mutation: m}).Save(ctx)
	case OpDelete, OpDeleteOne:
		return (&KeyValueDelete{config: c.config, hooks: c.Hooks(), mutation: m}).Exec(ctx)
	default:
		return nil, fmt.Errorf("ent: unknown KeyValue mutation op: %q", m.Op())
	}
}

// hooks and interceptors per client, for fast access.
type (
	hooks struct {
		AIRequest, KeyValue []ent.Hook
	}
	inters struct {
		AIRequest, KeyValue []ent.Interceptor
	}
)
