// Command kmerlsh partitions the k-mer space around seed centers, builds seed
// center lists, and inspects the resulting label files.
package main

func main() {
	execute()
}
