// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/medtrix/medtrix/ent/airequest"
	"github.com/medtrix/medtrix/ent/keyvalue"
	"github.com/medtrix/medtrix/ent/schema"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	airequestFields := schema.AIRequest{}.Fields()
	_ = airequestFields
	// airequestDescTimestamp is the schema descriptor for timestamp field.
	airequestDescTimestamp := airequestFields[0].Descriptor()
	// airequest.DefaultTimestamp holds the default value on creation for the timestamp field.
	airequest.DefaultTimestamp = airequestDescTimestamp.Default.(func() time.Time)
	// airequestDescSessionID is the schema descriptor for session_id field.
	airequestDescSessionID := airequestFields[4].Descriptor()
	// airequest.DefaultSessionID holds the default value on creation for the session_id field.
	airequest.DefaultSessionID = airequestDescSessionID.Default.(string)
	// airequestDescInputTokens is the schema descriptor for input_tokens field.
	airequestDescInputTokens := airequestFields[5].Descriptor()
	// airequest.DefaultInputTokens holds the default value on creation for the input_tokens field.
	airequest.DefaultInputTokens = airequestDescInputTokens.Default.(int)
	// airequestDescOutputTokens is the schema descriptor for output_tokens field.
	airequestDescOutputTokens := airequestFields[6].Descriptor()
	// airequest.DefaultOutputTokens holds the default value on creation for the output_tokens field.
	airequest.DefaultOutputTokens = airequestDescOutputTokens.Default.(int)
	// airequestDescLatencyMs is the schema descriptor for latency_ms field.
	airequestDescLatencyMs := airequestFields[7].Descriptor()
	// airequest.DefaultLatencyMs holds the default value on creation for the latency_ms field.
	airequest.DefaultLatencyMs = airequestDescLatencyMs.Default.(int64)
	// airequestDescErrorMessage is the schema descriptor for error_message field.
	airequestDescErrorMessage := airequestFields[9].Descriptor()
	// airequest.DefaultErrorMessage holds the default value on creation for the error_message field.
	airequest.DefaultErrorMessage = airequestDescErrorMessage.Default.(string)
	// airequestDescPrompt is the schema descriptor for prompt field.
	airequestDescPrompt := airequestFields[10].Descriptor()
	// airequest.DefaultPrompt holds the default value on creation for the prompt field.
	airequest.DefaultPrompt = airequestDescPrompt.Default.(string)
	// airequestDescResponse is the schema descriptor for response field.
	airequestDescResponse := airequestFields[11].Descriptor()
	// airequest.DefaultResponse holds the default value on creation for the response field.
	airequest.DefaultResponse = airequestDescResponse.Default.(string)
	keyvalueFields := schema.KeyValue{}.Fields()
	_ = keyvalueFields
	// keyvalueDescKey is the schema descriptor for key field.
	keyvalueDescKey := keyvalueFields[0].Descriptor()
	// keyvalue.KeyValidator is a validator for the "key" field. It is called by the builders before save.
	keyvalue.KeyValidator = keyvalueDescKey.Validators[0].(func(string) error)
	// keyvalueDescPayload is the schema descriptor for payload field.
	keyvalueDescPayload := keyvalueFields[1].Descriptor()
	// keyvalue.DefaultPayload holds the default value on creation for the payload field.
	keyvalue.DefaultPayload = keyvalueDescPayload.Default.(string)
	// keyvalueDescUpdatedAt is the schema descriptor for updated_at field.
	keyvalueDescUpdatedAt := keyvalueFields[2].Descriptor()
	// keyvalue.DefaultUpdatedAt holds the default value on creation for the updated_at field.
	keyvalue.DefaultUpdatedAt = keyvalueDescUpdatedAt.Default.(func() time.Time)
	// keyvalue.UpdateDefaultUpdatedAt holds the default value on update for the updated_at field.
	keyvalue.UpdateDefaultUpdatedAt = keyvalueDescUpdatedAt.UpdateDefault.(func() time.Time)
}
