/*
schema defines the types shared between the platform client, the model
client, the orchestration layer and the HTTP API.
*/
package schema
