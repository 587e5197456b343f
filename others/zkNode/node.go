package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/go-zookeeper/zk"
	"github.com/lab2439/ruuid"
)

// ZKRootPath is the root path in Zookeeper for node-id registration
const ZKRootPath = "/uuid_node"

// NodeRegistry hands out a stable 48-bit node identifier for version 1
// UUID generation and keeps it registered in Zookeeper, so an instance
// that restarts recovers the same node id instead of minting a new one.
type NodeRegistry struct {
	zkClient *zk.Conn // Zookeeper client connection
	service  string   // Service name (affects ZK node path)
	instance string   // Instance name, unique per host/process

	mu       sync.Mutex
	node     [6]byte
	lastTime int64 // last heartbeat timestamp, ms
}

// NodeInfo represents info stored for each instance in both ZK and the cache file.
type NodeInfo struct {
	NodeID     string `json:"node_id"`     // 48-bit node id, hex
	LastTime   int64  `json:"last_time"`   // Last timestamp this instance was active
	CreateTime int64  `json:"create_time"` // Creation timestamp
}

// NewNodeRegistry connects to Zookeeper and registers or recovers this
// instance's node id.
func NewNodeRegistry(zkServers []string, serviceName, instance string) (*NodeRegistry, error) {
	reg := &NodeRegistry{
		service:  serviceName,
		instance: instance,
	}

	c, _, err := zk.Connect(zkServers, time.Second*5)
	if err != nil {
		return nil, fmt.Errorf("connect zk failed: %v", err)
	}
	reg.zkClient = c

	node, err := reg.registerOrRecover()
	if err != nil {
		return nil, err
	}

	reg.node = node
	log.Printf("node registry initialized with node id: %x", node)

	// Periodically upload heartbeat and update state in Zookeeper and cache
	go reg.scheduledUploadTime()
	return reg, nil
}

// NodeID returns the registered 48-bit node identifier.
func (r *NodeRegistry) NodeID() [6]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.node
}

// registerOrRecover recovers the node id from Zookeeper or the local cache,
// or allocates a fresh one when this is a new instance.
func (r *NodeRegistry) registerOrRecover() ([6]byte, error) {
	var zero [6]byte

	servicePath := fmt.Sprintf("%s/%s", ZKRootPath, r.service)
	r.ensurePath(ZKRootPath)
	r.ensurePath(servicePath)

	nodeKey := fmt.Sprintf("%s/%s", servicePath, r.instance)

	var myNodeInfo NodeInfo

	exists, _, err := r.zkClient.Exists(nodeKey)
	if err != nil {
		return zero, fmt.Errorf("check node existence failed: %v", err)
	}

	if exists {
		// Recover the node id from the ZK node
		data, _, err := r.zkClient.Get(nodeKey)
		if err != nil {
			return zero, fmt.Errorf("get node info failed: %v", err)
		}
		json.Unmarshal(data, &myNodeInfo)

		currentTime := time.Now().UnixMilli()
		// Detect system clock rollback: handing the same node id to a
		// generator running behind its own past risks duplicate v1 UUIDs
		if currentTime < myNodeInfo.LastTime {
			return zero, fmt.Errorf("clock moved backwards: %d < %d", currentTime, myNodeInfo.LastTime)
		}

		log.Printf("recover node id %s from zk", myNodeInfo.NodeID)
	} else {
		// Not registered in ZK, try the local cache first
		cached, err := r.loadLocalCache()
		if err == nil {
			if time.Now().UnixMilli() < cached.LastTime {
				return zero, fmt.Errorf("clock moved backwards: %d < %d", time.Now().UnixMilli(), cached.LastTime)
			}
			myNodeInfo = cached
			log.Printf("recover node id %s from local cache", cached.NodeID)
		} else {
			// Fresh instance: take the hardware address, or a random
			// multicast-flagged id when the host has none
			node, err := allocateNodeID()
			if err != nil {
				return zero, err
			}
			now := time.Now().UnixMilli()
			myNodeInfo = NodeInfo{
				NodeID:     hex.EncodeToString(node[:]),
				LastTime:   now,
				CreateTime: now,
			}
			log.Printf("allocated new node id %s", myNodeInfo.NodeID)
		}
		myNodeInfo.LastTime = time.Now().UnixMilli()
	}

	// Register or update node info in Zookeeper
	bytes, _ := json.Marshal(myNodeInfo)
	if exists {
		_, err = r.zkClient.Set(nodeKey, bytes, -1)
	} else {
		_, err = r.zkClient.Create(nodeKey, bytes, 0, zk.WorldACL(zk.PermAll))
	}
	if err != nil {
		return zero, fmt.Errorf("register or update node info failed: %v", err)
	}

	// Save to a local cache file for recovery without ZK
	r.saveLocalCache(myNodeInfo)

	var node [6]byte
	raw, err := hex.DecodeString(myNodeInfo.NodeID)
	if err != nil || len(raw) != 6 {
		return zero, fmt.Errorf("corrupt node id %q", myNodeInfo.NodeID)
	}
	copy(node[:], raw)
	return node, nil
}

// allocateNodeID prefers a real IEEE 802 address; hosts without one get a
// random id with the multicast bit set, per RFC 4122 section 4.1.6.
func allocateNodeID() ([6]byte, error) {
	var node [6]byte

	ifaces, err := net.Interfaces()
	if err == nil {
		for _, iface := range ifaces {
			if len(iface.HardwareAddr) >= 6 {
				copy(node[:], iface.HardwareAddr)
				return node, nil
			}
		}
	}

	return ruuid.RandomNodeID(rand.Reader)
}

// scheduledUploadTime periodically updates this instance's info in
// Zookeeper and the local cache.
func (r *NodeRegistry) scheduledUploadTime() {
	ticker := time.NewTicker(3 * time.Second)
	nodeKey := fmt.Sprintf("%s/%s/%s", ZKRootPath, r.service, r.instance)

	for range ticker.C {
		now := time.Now().UnixMilli()

		r.mu.Lock()
		last := r.lastTime
		node := r.node
		r.mu.Unlock()

		// If local time is less than lastTime, the system clock went backwards
		if now < last {
			log.Printf("Clock rollback detected during heartbeat! Local: %d, Last: %d", now, last)
			continue
		}

		r.mu.Lock()
		r.lastTime = now
		r.mu.Unlock()

		info := NodeInfo{
			NodeID:   hex.EncodeToString(node[:]),
			LastTime: now,
		}
		data, _ := json.Marshal(info)

		// Ignore errors, since Zookeeper may occasionally be unavailable
		r.zkClient.Set(nodeKey, data, -1)

		// Update the local file cache as well
		r.saveLocalCache(info)
	}
}

// ensurePath creates a ZK path if needed.
func (r *NodeRegistry) ensurePath(path string) {
	exists, _, _ := r.zkClient.Exists(path)
	if !exists {
		r.zkClient.Create(path, []byte{}, 0, zk.WorldACL(zk.PermAll))
	}
}

// saveLocalCache saves the given NodeInfo to a file for local state recovery.
func (r *NodeRegistry) saveLocalCache(info NodeInfo) {
	data, _ := json.Marshal(info)
	fileName := fmt.Sprintf(".uuid_node_cache_%s", r.instance)
	os.WriteFile(fileName, data, 0644)
}

// loadLocalCache loads NodeInfo from the local cache file, if present.
func (r *NodeRegistry) loadLocalCache() (NodeInfo, error) {
	fileName := fmt.Sprintf(".uuid_node_cache_%s", r.instance)
	data, err := os.ReadFile(fileName)
	if err != nil {
		return NodeInfo{}, err
	}
	var info NodeInfo
	err = json.Unmarshal(data, &info)
	return info, err
}

func main() {
	// NOTE: This code requires a local Zookeeper at localhost:2181 to run.
	// You can use Docker to start Zookeeper for local testing:
	// docker run --name some-zookeeper -p 2181:2181 -d zookeeper

	zkServers := []string{"127.0.0.1:2181"}

	hostname, _ := os.Hostname()
	registry, err := NewNodeRegistry(zkServers, "order-service", hostname)
	if err != nil {
		log.Fatalf("Failed to init node registry: %v", err)
	}

	gen := ruuid.NewGenerator()
	gen.SetNodeID(registry.NodeID())

	log.Println("Start generating v1 UUIDs...")

	var wg sync.WaitGroup
	// Launch 10 goroutines concurrently, each generating 100 UUIDs
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id, err := gen.NewV1()
				if err != nil {
					log.Println(err)
				} else {
					fmt.Println(id)
				}
			}
		}()
	}
	wg.Wait()
	log.Println("Done.")
}
