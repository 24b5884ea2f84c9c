// Package storage derives the on-disk layout of a Milvus standalone session.
//
// Every session lives under one base data directory:
//
//	<base>/
//	  configs/milvus.yaml
//	  logs/{etcd.log, milvus-stdout.log, milvus-stderr.log}
//	  data/{etcd.data, storage, rocketmq}
//
// # Base Directory
//
// The base is either supplied by the caller or DefaultDataDir:
//   - Windows: %APPDATA%\milvus.io\milvus-server
//   - Others: $HOME/.milvus.io/milvus-server
//
// # Path Variables
//
// The Resolver is authoritative for etcd_log_path, system_log_path, etcd_data_dir,
// local_storage_dir and rocketmq_data_dir: it overwrites whatever the template
// declared for them. On Windows etcd_log_path is a winfile:/// URI.
//
// # Usage
//
//	layout, err := storage.NewResolver(logger).Resolve("/tmp/milvus", table)
//	fmt.Println(layout.ConfigFile())
package storage
