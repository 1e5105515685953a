// Package mongodb implements the store interfaces on MongoDB. Tasks and
// users live in the "tasks" and "users" collections with string UUIDs as
// document IDs. Owner scoping is part of every filter, and updates and
// deletes use FindOneAndUpdate/FindOneAndDelete so the match and the write
// happen in one atomic server operation.
package mongodb
